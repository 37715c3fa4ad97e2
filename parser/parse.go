package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"call-scheduler/errors"
	"call-scheduler/models"
)

// Column names expected in the CSV header row. Order does not matter;
// surrounding whitespace is tolerated.
const (
	colCustomerName = "CustomerName"
	colAvgDuration  = "AverageCallDurationSeconds"
	colStartTime    = "StartTimePT"
	colEndTime      = "EndTimePT"
	colNumberCalls  = "NumberOfCalls"
	colPriority     = "Priority"
)

var requiredColumns = []string{
	colCustomerName,
	colAvgDuration,
	colStartTime,
	colEndTime,
	colNumberCalls,
	colPriority,
}

// Parse reads CSV data from the reader and returns a slice of CustomerRequirement.
// The first non-comment row must be a header naming the required columns;
// rows starting with '#' are skipped as comments. Time fields are 12-hour
// strings like "9AM" or "7PM" mapped to hour buckets 0-23. "12AM" in the end
// column means end of day (hour 24), since the end hour is exclusive.
// All validation the scheduler relies on happens here: positive duration,
// non-negative call volume, priority 1-5, end hour after start hour, unique
// non-empty customer names.
func Parse(r io.Reader) ([]models.CustomerRequirement, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var data []models.CustomerRequirement
	var columns map[string]int
	seen := make(map[string]bool)
	lineNum := 0

	for {
		record, err := reader.Read()
		lineNum++
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV at line %d: %w", lineNum, err)
		}

		if len(record) == 0 || (len(record) == 1 && strings.TrimSpace(record[0]) == "") {
			continue
		}
		if strings.HasPrefix(record[0], "#") {
			continue
		}

		// First data-looking row is the header.
		if columns == nil {
			columns, err = mapColumns(record)
			if err != nil {
				return nil, &errors.ParseError{Line: lineNum, Record: record, Err: err}
			}
			continue
		}

		if len(record) != len(columns) {
			return nil, &errors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    errors.ErrInvalidFieldCount,
			}
		}

		cr, err := parseRow(record, columns)
		if err != nil {
			return nil, &errors.ParseError{Line: lineNum, Record: record, Err: err}
		}
		if seen[cr.Name] {
			return nil, &errors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    fmt.Errorf("%w: %s", errors.ErrDuplicateCustomer, cr.Name),
			}
		}
		seen[cr.Name] = true
		data = append(data, cr)
	}

	if columns == nil && len(data) == 0 {
		return nil, errors.ErrEmptyRecord
	}

	return data, nil
}

func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: %s", errors.ErrMissingColumn, name)
		}
	}
	return columns, nil
}

func parseRow(record []string, columns map[string]int) (models.CustomerRequirement, error) {
	field := func(name string) string {
		return strings.TrimSpace(record[columns[name]])
	}

	cr := models.CustomerRequirement{}

	cr.Name = field(colCustomerName)
	if cr.Name == "" {
		return cr, errors.ErrEmptyCustomerName
	}

	var err error
	cr.AverageCallDurationSeconds, err = strconv.Atoi(field(colAvgDuration))
	if err != nil {
		return cr, fmt.Errorf("%w: %v", errors.ErrInvalidDuration, err)
	}
	if cr.AverageCallDurationSeconds <= 0 {
		return cr, fmt.Errorf("%w: must be positive, got %d", errors.ErrInvalidDuration, cr.AverageCallDurationSeconds)
	}

	cr.StartHour, err = parseClockTime(field(colStartTime))
	if err != nil {
		return cr, fmt.Errorf("%w: %v", errors.ErrInvalidStartTime, err)
	}

	cr.EndHour, err = parseClockTime(field(colEndTime))
	if err != nil {
		return cr, fmt.Errorf("%w: %v", errors.ErrInvalidEndTime, err)
	}
	// End hour is exclusive, so midnight as an end time means end of day.
	if cr.EndHour == 0 {
		cr.EndHour = models.HoursPerDay
	}
	if cr.EndHour <= cr.StartHour {
		return cr, fmt.Errorf("%w: %s >= %s", errors.ErrInvalidWindow, field(colStartTime), field(colEndTime))
	}

	cr.NumberOfCalls, err = strconv.Atoi(field(colNumberCalls))
	if err != nil {
		return cr, fmt.Errorf("%w: %v", errors.ErrInvalidNumberOfCalls, err)
	}
	if cr.NumberOfCalls < 0 {
		return cr, fmt.Errorf("%w: cannot be negative, got %d", errors.ErrInvalidNumberOfCalls, cr.NumberOfCalls)
	}

	cr.Priority, err = strconv.Atoi(field(colPriority))
	if err != nil {
		return cr, fmt.Errorf("%w: %v", errors.ErrInvalidPriority, err)
	}
	if cr.Priority < 1 || cr.Priority > 5 {
		return cr, fmt.Errorf("%w: must be 1-5, got %d", errors.ErrInvalidPriority, cr.Priority)
	}

	return cr, nil
}

// parseClockTime converts a 12-hour time string like "9AM", "12PM" or "7PM"
// to an hour bucket 0-23. 12AM is midnight (0), 12PM is noon (12).
func parseClockTime(value string) (int, error) {
	v := strings.ToUpper(strings.TrimSpace(value))
	if v == "" {
		return 0, fmt.Errorf("empty time string")
	}

	var hourStr string
	var pm bool
	switch {
	case strings.HasSuffix(v, "AM"):
		hourStr = strings.TrimSuffix(v, "AM")
	case strings.HasSuffix(v, "PM"):
		hourStr = strings.TrimSuffix(v, "PM")
		pm = true
	default:
		return 0, fmt.Errorf("expected format like '9AM' or '7PM', got %q", value)
	}

	hour, err := strconv.Atoi(strings.TrimSpace(hourStr))
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q", value)
	}
	if hour < 1 || hour > 12 {
		return 0, fmt.Errorf("hour must be 1-12, got %d", hour)
	}

	if pm {
		if hour == 12 {
			return 12, nil
		}
		return hour + 12, nil
	}
	if hour == 12 {
		return 0, nil
	}
	return hour, nil
}
