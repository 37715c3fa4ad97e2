package formatter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"call-scheduler/models"

	"github.com/shopspring/decimal"
)

// hundred is used to render utilization ratios as percentages.
var hundred = decimal.NewFromInt(100)

// ScheduleView is the prepared representation shared by all formatters.
type ScheduleView struct {
	Hours           []HourView           `json:"hours"`
	Reports         []ReportView         `json:"reports"`
	Redistributions []RedistributionView `json:"redistributions,omitempty"`
}

// HourView is one hour of the schedule with per-customer agent counts.
type HourView struct {
	Hour        string         `json:"hour"`
	TotalAgents int            `json:"total_agents"`
	Customers   map[string]int `json:"customers,omitempty"`
	UnmetDemand map[string]int `json:"unmet_demand,omitempty"`

	// Ordered views for text output; JSON renders the maps (keys sorted by
	// encoding/json, so output stays deterministic).
	customers []models.CustomerAgents
	unmet     []models.CustomerAgents
}

// ReportView is one customer's daily allocation summary.
type ReportView struct {
	Customer       string `json:"customer"`
	Priority       int    `json:"priority"`
	RequestedCalls string `json:"requested_calls"`
	ServedCalls    string `json:"served_calls"`
	UnmetCalls     string `json:"unmet_calls"`
	Utilization    string `json:"utilization"`
}

// RedistributionView is one call movement made by the shift algorithm.
type RedistributionView struct {
	Customer   string `json:"customer"`
	FromHour   string `json:"from_hour"`
	ToHour     string `json:"to_hour"`
	CallsMoved string `json:"calls_moved"`
}

// prepareScheduleView extracts and organizes schedule data for formatting.
func prepareScheduleView(schedule *models.Schedule) *ScheduleView {
	view := &ScheduleView{Hours: make([]HourView, models.HoursPerDay)}

	for h := range schedule.Hours {
		alloc := schedule.Hours[h]
		hv := HourView{
			Hour:        fmtHour(h),
			TotalAgents: alloc.TotalAgents,
			customers:   alloc.Customers,
			unmet:       alloc.Unmet,
		}
		if len(alloc.Customers) > 0 {
			hv.Customers = make(map[string]int, len(alloc.Customers))
			for _, c := range alloc.Customers {
				hv.Customers[c.Name] = c.Agents
			}
		}
		if len(alloc.Unmet) > 0 {
			hv.UnmetDemand = make(map[string]int, len(alloc.Unmet))
			for _, u := range alloc.Unmet {
				hv.UnmetDemand[u.Name] = u.Agents
			}
		}
		view.Hours[h] = hv
	}

	for _, r := range schedule.Reports {
		view.Reports = append(view.Reports, ReportView{
			Customer:       r.Name,
			Priority:       r.Priority,
			RequestedCalls: r.RequestedCalls.StringFixed(2),
			ServedCalls:    r.ServedCalls.StringFixed(2),
			UnmetCalls:     r.UnmetCalls.StringFixed(2),
			Utilization:    r.Utilization.Mul(hundred).StringFixed(1) + "%",
		})
	}

	for _, m := range schedule.Moves {
		view.Redistributions = append(view.Redistributions, RedistributionView{
			Customer:   m.Customer,
			FromHour:   fmtHour(m.FromHour),
			ToHour:     fmtHour(m.ToHour),
			CallsMoved: m.CallsMoved.StringFixed(2),
		})
	}

	return view
}

// FormatText returns the text representation of the schedule: one line per
// hour, a redistribution section when the shift algorithm moved calls, and a
// per-customer summary.
func FormatText(schedule *models.Schedule) string {
	view := prepareScheduleView(schedule)
	var sb strings.Builder

	for _, hv := range view.Hours {
		sb.WriteString(formatTextLine(hv))
		sb.WriteString("\n")
	}

	if len(view.Redistributions) > 0 {
		sb.WriteString("\nRedistributions:\n")
		for _, m := range view.Redistributions {
			sb.WriteString(fmt.Sprintf("  %s: %s -> %s (%s calls)\n",
				m.Customer, m.FromHour, m.ToHour, m.CallsMoved))
		}
	}

	if len(view.Reports) > 0 {
		sb.WriteString("\nCustomer summary:\n")
		for _, r := range view.Reports {
			sb.WriteString(fmt.Sprintf("  %s [priority %d]: requested=%s, served=%s, unmet=%s, utilization=%s\n",
				r.Customer, r.Priority, r.RequestedCalls, r.ServedCalls, r.UnmetCalls, r.Utilization))
		}
	}

	return sb.String()
}

// formatTextLine formats a single hour line for text output.
func formatTextLine(hv HourView) string {
	if len(hv.customers) == 0 && len(hv.unmet) == 0 {
		return fmt.Sprintf("%s : total=0 ; none", hv.Hour)
	}

	var parts []string
	for _, c := range hv.customers {
		parts = append(parts, fmt.Sprintf("%s=%d", c.Name, c.Agents))
	}
	customers := "none"
	if len(parts) > 0 {
		customers = strings.Join(parts, ", ")
	}

	line := fmt.Sprintf("%s : total=%d ; %s", hv.Hour, hv.TotalAgents, customers)

	if len(hv.unmet) > 0 {
		var unmetParts []string
		for _, u := range hv.unmet {
			unmetParts = append(unmetParts, fmt.Sprintf("%s=%d", u.Name, u.Agents))
		}
		line += " | unmet: " + strings.Join(unmetParts, ", ")
	}

	return line
}

// FormatJSON returns the JSON representation of the schedule.
func FormatJSON(schedule *models.Schedule) string {
	view := prepareScheduleView(schedule)
	jsonBytes, _ := json.MarshalIndent(view, "", "  ")
	return string(jsonBytes)
}

// FormatCSV returns the CSV representation of the schedule, one row per hour.
func FormatCSV(schedule *models.Schedule) string {
	view := prepareScheduleView(schedule)
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	writer.Write([]string{"hour", "total_agents", "customers", "unmet_demand"})

	for _, hv := range view.Hours {
		var custParts []string
		for _, c := range hv.customers {
			custParts = append(custParts, fmt.Sprintf("%s=%d", c.Name, c.Agents))
		}
		customers := "none"
		if len(custParts) > 0 {
			customers = strings.Join(custParts, ";")
		}

		var unmetParts []string
		for _, u := range hv.unmet {
			unmetParts = append(unmetParts, fmt.Sprintf("%s=%d", u.Name, u.Agents))
		}

		writer.Write([]string{
			hv.Hour,
			fmt.Sprintf("%d", hv.TotalAgents),
			customers,
			strings.Join(unmetParts, ";"),
		})
	}

	writer.Flush()
	return sb.String()
}

func fmtHour(h int) string {
	return fmt.Sprintf("%02d:00", h)
}
