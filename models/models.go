package models

import "github.com/shopspring/decimal"

// HoursPerDay is the length of the scheduling day. All hour values are
// buckets in a single fixed timezone: bucket h covers [h:00, h+1:00).
const HoursPerDay = 24

// CustomerRequirement represents one validated input row: a customer's call
// volume for the day and the window it must be served in.
// It is shared across packages to schedule calls.
type CustomerRequirement struct {
	Name                       string
	AverageCallDurationSeconds int
	StartHour                  int // 0-23, inclusive
	EndHour                    int // 1-24, exclusive
	NumberOfCalls              int
	Priority                   int // 1-5, 1 is highest
}

// ActiveHours returns the length of the customer's window in hours.
func (c CustomerRequirement) ActiveHours() int {
	return c.EndHour - c.StartHour
}

// Schedule is the complete output of one scheduling run: exactly HoursPerDay
// hour entries (zero-filled where no demand exists), one report per input
// customer, and the call movements made when the shift algorithm ran.
type Schedule struct {
	Hours   [HoursPerDay]HourAllocation
	Reports []AllocationReport
	Moves   []Redistribution
}

// HourAllocation holds the agents scheduled in a single hour, broken down by
// customer in priority order (ties by input order).
type HourAllocation struct {
	Hour        int
	TotalAgents int
	Customers   []CustomerAgents
	Unmet       []CustomerAgents
}

// CustomerAgents is a (customer, agent count) pair within one hour.
type CustomerAgents struct {
	Name     string
	Priority int
	Agents   int
}

// AllocationReport summarizes how much of a customer's requested daily
// volume was actually staffed. RequestedCalls = ServedCalls + UnmetCalls
// holds exactly.
type AllocationReport struct {
	Name           string
	Priority       int
	RequestedCalls decimal.Decimal
	ServedCalls    decimal.Decimal
	UnmetCalls     decimal.Decimal
	// Utilization is ServedCalls / RequestedCalls (1 when nothing was
	// requested).
	Utilization decimal.Decimal
}

// Redistribution records one call movement made by the shift allocator.
// Calls only ever move between hours of the same customer's own window.
type Redistribution struct {
	Customer   string
	FromHour   int
	ToHour     int
	CallsMoved decimal.Decimal
}
