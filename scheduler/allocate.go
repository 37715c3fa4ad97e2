package scheduler

import (
	"call-scheduler/models"

	"github.com/shopspring/decimal"
)

// allocate performs the final per-hour allocation over current call levels.
// With a nil capacity every requirement is served in full. With a capacity,
// customers are walked priority-ascending (ties by input order) and each
// receives what fits in the hour's remaining capacity, so a higher-priority
// customer is never starved to benefit a lower-priority one.
//
// A partially served customer's served calls are scaled proportionally to
// the agents granted: served = calls * granted / required. The exact
// remainder is its unmet volume, so requested = served + unmet to the digit.
func allocate(ds *demandSet, capacity *int) *models.Schedule {
	sched := &models.Schedule{}
	served := make([]decimal.Decimal, len(ds.customers))
	for i := range served {
		served[i] = decimal.Zero
	}

	for hour := 0; hour < models.HoursPerDay; hour++ {
		alloc := models.HourAllocation{Hour: hour}
		remaining := 0
		if capacity != nil {
			remaining = *capacity
		}

		for _, cust := range ds.byPriorityAsc {
			rec := cust.byHour[hour]
			if rec == nil {
				continue
			}
			required := agentsFor(rec.currentCalls, cust.agentsPerCall)
			if required == 0 {
				continue
			}

			granted := required
			if capacity != nil && granted > remaining {
				granted = remaining
			}

			if granted > 0 {
				alloc.Customers = append(alloc.Customers, models.CustomerAgents{
					Name:     cust.name,
					Priority: cust.priority,
					Agents:   granted,
				})
				alloc.TotalAgents += granted
				if capacity != nil {
					remaining -= granted
				}
			}
			if granted < required {
				alloc.Unmet = append(alloc.Unmet, models.CustomerAgents{
					Name:     cust.name,
					Priority: cust.priority,
					Agents:   required - granted,
				})
			}

			switch {
			case granted >= required:
				served[cust.order] = served[cust.order].Add(rec.currentCalls)
			case granted > 0:
				share := rec.currentCalls.
					Mul(decimal.NewFromInt(int64(granted))).
					Div(decimal.NewFromInt(int64(required)))
				served[cust.order] = served[cust.order].Add(share)
			}
		}

		sched.Hours[hour] = alloc
	}

	sched.Reports = buildReports(ds, served)
	return sched
}

// buildReports produces one AllocationReport per customer, in input order.
func buildReports(ds *demandSet, served []decimal.Decimal) []models.AllocationReport {
	reports := make([]models.AllocationReport, 0, len(ds.customers))
	for _, cust := range ds.customers {
		requested := decimal.Zero
		for h := cust.startHour; h < cust.endHour; h++ {
			requested = requested.Add(cust.byHour[h].originalCalls)
		}

		s := served[cust.order]
		utilization := decimal.NewFromInt(1)
		if requested.Sign() > 0 {
			utilization = s.Div(requested)
		}

		reports = append(reports, models.AllocationReport{
			Name:           cust.name,
			Priority:       cust.priority,
			RequestedCalls: requested,
			ServedCalls:    s,
			UnmetCalls:     requested.Sub(s),
			Utilization:    utilization,
		})
	}
	return reports
}
