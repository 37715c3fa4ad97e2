package scheduler

import (
	"sort"

	"call-scheduler/models"

	"github.com/shopspring/decimal"
)

// redistribute moves overflow calls out of hours whose total agent
// requirement exceeds capacity and into spare hours of the same customer's
// own [start, end) window, nearest hour first. Customers are walked from
// lowest priority to highest, so higher-priority demand is only ever shifted
// once no lower-priority demand is left to move. Only currentCalls is
// mutated; originalCalls stays untouched for reporting. Per-customer total
// volume is preserved exactly because every move subtracts and adds the same
// amount within one customer.
func redistribute(ds *demandSet, capacity int) []models.Redistribution {
	var moves []models.Redistribution
	one := decimal.NewFromInt(1)

	for hour := 0; hour < models.HoursPerDay; hour++ {
		overflow := ds.agentsAt(hour) - capacity
		if overflow <= 0 {
			continue
		}

		for _, cust := range ds.byPriorityDesc {
			if overflow <= 0 {
				break
			}
			rec := cust.byHour[hour]
			if rec == nil || rec.currentCalls.Sign() <= 0 {
				continue
			}
			if agentsFor(rec.currentCalls, cust.agentsPerCall) == 0 {
				continue
			}

			callsPerAgent := one.Div(cust.agentsPerCall)

			for _, target := range spilloverCandidates(ds, cust, hour, capacity) {
				if overflow <= 0 || rec.currentCalls.Sign() <= 0 {
					break
				}

				// Spare capacity is recomputed live: moves made earlier in
				// this pass already count against the target hour.
				spare := capacity - ds.agentsAt(target)
				if spare <= 0 {
					continue
				}

				move := decimal.Min(
					rec.currentCalls,
					decimal.NewFromInt(int64(spare)).Mul(callsPerAgent),
					decimal.NewFromInt(int64(overflow)).Mul(callsPerAgent),
				)
				if move.Sign() <= 0 {
					continue
				}

				rec.currentCalls = rec.currentCalls.Sub(move)
				tgt := cust.byHour[target]
				tgt.currentCalls = tgt.currentCalls.Add(move)

				freed := agentsFor(move, cust.agentsPerCall)
				overflow -= freed

				moves = append(moves, models.Redistribution{
					Customer:   cust.name,
					FromHour:   hour,
					ToHour:     target,
					CallsMoved: move,
				})
			}
		}
	}

	return moves
}

// spilloverCandidates lists hours inside the customer's window that
// currently have spare capacity, ordered by distance from the source hour;
// ties go to the earlier hour.
func spilloverCandidates(ds *demandSet, cust *customerDemand, sourceHour, capacity int) []int {
	type candidate struct {
		hour     int
		distance int
	}

	var cands []candidate
	for h := cust.startHour; h < cust.endHour; h++ {
		if h == sourceHour {
			continue
		}
		if capacity-ds.agentsAt(h) <= 0 {
			continue
		}
		d := h - sourceHour
		if d < 0 {
			d = -d
		}
		cands = append(cands, candidate{hour: h, distance: d})
	}

	// Stable sort over ascending hours, so the earlier hour wins a distance
	// tie.
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].distance < cands[j].distance
	})

	hours := make([]int, len(cands))
	for i, c := range cands {
		hours[i] = c.hour
	}
	return hours
}
