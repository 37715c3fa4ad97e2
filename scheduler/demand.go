package scheduler

import (
	"fmt"
	"sort"

	"call-scheduler/errors"
	"call-scheduler/models"

	"github.com/shopspring/decimal"
)

// hourlyDemand is one mutable (customer, hour) record. originalCalls is set
// at expansion time and never changes; currentCalls starts equal to it and
// is only ever moved between a customer's own hours by the shift allocator.
type hourlyDemand struct {
	customer      *customerDemand
	hour          int
	originalCalls decimal.Decimal
	currentCalls  decimal.Decimal
}

// customerDemand groups one customer's demand records with the conversion
// rate from calls to agents.
type customerDemand struct {
	name      string
	priority  int
	startHour int
	endHour   int
	// order is the customer's position in the input, used as the stable
	// tie-break in both priority orderings.
	order         int
	agentsPerCall decimal.Decimal // durationSeconds / 3600 / utilization
	byHour        [models.HoursPerDay]*hourlyDemand
}

// demandSet is the arena of demand records for one run plus the two
// customer orderings the allocators walk. Both orderings reference the same
// records; a mutation made through one ordering is visible through the
// other.
type demandSet struct {
	records        []*hourlyDemand
	customers      []*customerDemand // input order
	byPriorityAsc  []*customerDemand // priority 1 first, ties by input order
	byPriorityDesc []*customerDemand // priority 5 first, ties by input order
}

// expandDemands turns validated requirements into the per-hour demand arena.
// Each customer's volume is spread uniformly across its active hours
// [start, end); fractional call rates are expected and kept exact.
// Records violating the parser's guarantees are a contract breach and fail
// the whole run before any allocation starts.
func expandDemands(data []models.CustomerRequirement, utilization float64) (*demandSet, error) {
	if utilization <= 0 {
		return nil, fmt.Errorf("%w: got %v", errors.ErrInvalidUtilization, utilization)
	}

	ds := &demandSet{}
	util := decimal.NewFromFloat(utilization)

	for i, cr := range data {
		if cr.EndHour <= cr.StartHour {
			return nil, &errors.ContractError{
				Customer: cr.Name,
				Reason:   fmt.Sprintf("end hour %d not after start hour %d", cr.EndHour, cr.StartHour),
			}
		}
		if cr.StartHour < 0 || cr.EndHour > models.HoursPerDay {
			return nil, &errors.ContractError{
				Customer: cr.Name,
				Reason:   fmt.Sprintf("window [%d, %d) outside the day", cr.StartHour, cr.EndHour),
			}
		}
		if cr.Priority < 1 || cr.Priority > 5 {
			return nil, &errors.ContractError{
				Customer: cr.Name,
				Reason:   fmt.Sprintf("priority %d outside 1-5", cr.Priority),
			}
		}
		if cr.AverageCallDurationSeconds <= 0 {
			return nil, &errors.ContractError{
				Customer: cr.Name,
				Reason:   fmt.Sprintf("call duration %d not positive", cr.AverageCallDurationSeconds),
			}
		}
		if cr.NumberOfCalls < 0 {
			return nil, &errors.ContractError{
				Customer: cr.Name,
				Reason:   fmt.Sprintf("negative call volume %d", cr.NumberOfCalls),
			}
		}

		callsPerHour := decimal.NewFromInt(int64(cr.NumberOfCalls)).
			Div(decimal.NewFromInt(int64(cr.ActiveHours())))

		cust := &customerDemand{
			name:      cr.Name,
			priority:  cr.Priority,
			startHour: cr.StartHour,
			endHour:   cr.EndHour,
			order:     i,
			agentsPerCall: decimal.NewFromInt(int64(cr.AverageCallDurationSeconds)).
				Div(secondsPerHour).
				Div(util),
		}

		for h := cr.StartHour; h < cr.EndHour; h++ {
			rec := &hourlyDemand{
				customer:      cust,
				hour:          h,
				originalCalls: callsPerHour,
				currentCalls:  callsPerHour,
			}
			cust.byHour[h] = rec
			ds.records = append(ds.records, rec)
		}
		ds.customers = append(ds.customers, cust)
	}

	ds.byPriorityAsc = append([]*customerDemand(nil), ds.customers...)
	sort.SliceStable(ds.byPriorityAsc, func(i, j int) bool {
		return ds.byPriorityAsc[i].priority < ds.byPriorityAsc[j].priority
	})

	ds.byPriorityDesc = append([]*customerDemand(nil), ds.customers...)
	sort.SliceStable(ds.byPriorityDesc, func(i, j int) bool {
		return ds.byPriorityDesc[i].priority > ds.byPriorityDesc[j].priority
	})

	return ds, nil
}

// agentsAt returns the total agents required in an hour given current call
// levels across all customers.
func (ds *demandSet) agentsAt(hour int) int {
	total := 0
	for _, cust := range ds.customers {
		if rec := cust.byHour[hour]; rec != nil {
			total += agentsFor(rec.currentCalls, cust.agentsPerCall)
		}
	}
	return total
}
