package errors

import "fmt"

// ParseError wraps a specific error with context about where it occurred.
type ParseError struct {
	Line   int
	Record []string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %v (record: %v)", e.Line, e.Err, e.Record)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Define specific error types for better error handling
var (
	ErrMissingColumn        = fmt.Errorf("missing required column")
	ErrInvalidFieldCount    = fmt.Errorf("invalid field count")
	ErrEmptyCustomerName    = fmt.Errorf("empty customer name")
	ErrDuplicateCustomer    = fmt.Errorf("duplicate customer name")
	ErrInvalidDuration      = fmt.Errorf("invalid duration")
	ErrInvalidStartTime     = fmt.Errorf("invalid start time")
	ErrInvalidEndTime       = fmt.Errorf("invalid end time")
	ErrInvalidWindow        = fmt.Errorf("end time must be after start time")
	ErrInvalidNumberOfCalls = fmt.Errorf("invalid number of calls")
	ErrInvalidPriority      = fmt.Errorf("invalid priority")
	ErrEmptyRecord          = fmt.Errorf("empty record")

	// Configuration errors: fatal, raised before any allocation starts.
	ErrInvalidUtilization = fmt.Errorf("utilization must be greater than 0")
	ErrUnknownAlgorithm   = fmt.Errorf("unknown algorithm")
)

// ContractError signals that a record reached the scheduler violating a
// guarantee the parser is defined to enforce. It is a programming error in
// the caller, not bad user input.
type ContractError struct {
	Customer string
	Reason   string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("input contract violation for customer %q: %s", e.Customer, e.Reason)
}
