package scheduler

import (
	"fmt"

	"call-scheduler/errors"

	"github.com/shopspring/decimal"
)

var secondsPerHour = decimal.NewFromInt(3600)

// agentsFor converts a call rate to a whole agent count:
// ceil(calls * agentsPerCall). A fractional call rate still occupies a whole
// agent.
func agentsFor(calls, agentsPerCall decimal.Decimal) int {
	if calls.Sign() <= 0 {
		return 0
	}
	return int(calls.Mul(agentsPerCall).Ceil().IntPart())
}

// RequiredAgents is the baseline staffing formula applied to a single
// (customer, hour) cell: ceil(calls * durationSeconds / 3600 / utilization).
func RequiredAgents(calls decimal.Decimal, durationSeconds int, utilization float64) (int, error) {
	if utilization <= 0 {
		return 0, fmt.Errorf("%w: got %v", errors.ErrInvalidUtilization, utilization)
	}
	agentsPerCall := decimal.NewFromInt(int64(durationSeconds)).
		Div(secondsPerHour).
		Div(decimal.NewFromFloat(utilization))
	return agentsFor(calls, agentsPerCall), nil
}
