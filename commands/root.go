// Package commands wires the CLI shell: flag parsing, input parsing,
// scheduling, output rendering, result-file writing, and metrics exposure.
package commands

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"call-scheduler/config"
	schederrors "call-scheduler/errors"
	"call-scheduler/formatter"
	"call-scheduler/logging"
	"call-scheduler/metrics"
	"call-scheduler/models"
	"call-scheduler/parser"
	"call-scheduler/scheduler"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	input       string
	format      string
	utilization float64
	capacity    int
	algorithm   string
	metricsAddr string
	pushGateway string
	wait        bool
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "call-scheduler",
	Short: "Compute hourly call-center agent staffing requirements",
	Long: `call-scheduler converts per-customer call-volume requirements into an
hour-by-hour count of agents needed over a 24-hour day. With a per-hour
capacity ceiling it allocates scarce agents by priority (greedy) or
redistributes overflow into each customer's spare hours (shift).`,
	SilenceUsage: true,
	RunE:         run,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().StringVarP(&input, "input", "i", "", "Input CSV file (required)")
	rootCmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text|json|csv")
	rootCmd.Flags().Float64VarP(&utilization, "utilization", "u", 1.0, "Agent utilization factor (0 < u <= 1)")
	rootCmd.Flags().IntVarP(&capacity, "capacity", "c", 0, "Maximum agent capacity per hour (omit for uncapped)")
	rootCmd.Flags().StringVarP(&algorithm, "algorithm", "a", scheduler.AlgorithmGreedy, "Allocation algorithm: greedy|shift")
	rootCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Address to expose Prometheus metrics (e.g., :9090)")
	rootCmd.Flags().StringVar(&pushGateway, "push-url", "", "Pushgateway URL to push metrics to (e.g., http://localhost:9091)")
	rootCmd.Flags().BoolVar(&wait, "wait", false, "Keep process running after completion to allow for metric scraping")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.MarkFlagRequired("input")
}

func run(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	logging.Init(verbose, cfg.LogDir)

	if format != "text" && format != "json" && format != "csv" {
		return fmt.Errorf("format must be one of: text, json, csv (got: %s)", format)
	}
	if utilization <= 0 || utilization > 1 {
		return fmt.Errorf("utilization must be between 0 (exclusive) and 1 (inclusive), got %v", utilization)
	}
	if algorithm != scheduler.AlgorithmGreedy && algorithm != scheduler.AlgorithmShift {
		return fmt.Errorf("%w: %q (expected greedy or shift)", schederrors.ErrUnknownAlgorithm, algorithm)
	}

	var capacityPtr *int
	if cmd.Flags().Changed("capacity") {
		if capacity < 0 {
			return fmt.Errorf("capacity must be non-negative, got %d", capacity)
		}
		capacityPtr = &capacity
	}

	if metricsAddr != "" {
		go serveMetrics(metricsAddr)
	}

	data, err := parseInput(input)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("no valid records found in %s", input)
	}

	log.Debug().
		Int("customers", len(data)).
		Float64("utilization", utilization).
		Str("algorithm", algorithm).
		Msg("Scheduling")

	metrics.ResetSchedulerGauges()
	schedStart := time.Now()
	sched, err := scheduler.GenerateSchedule(data, scheduler.Options{
		Utilization: utilization,
		Capacity:    capacityPtr,
		Algorithm:   algorithm,
	})
	if err != nil {
		return err
	}
	metrics.SchedulerDurationSeconds.Observe(time.Since(schedStart).Seconds())
	metrics.RecordSchedule(sched)

	var out string
	switch format {
	case "json":
		out = formatter.FormatJSON(sched)
	case "csv":
		out = formatter.FormatCSV(sched)
	default:
		out = formatter.FormatText(sched)
	}
	fmt.Print(out)

	logSummary(sched)

	resultPath, err := formatter.WriteResultFile(out, format, input, utilization, capacityPtr, algorithm, cfg.ResultsDir)
	if err != nil {
		return err
	}
	log.Info().Str("path", resultPath).Msg("Result written")

	if pushGateway != "" {
		if err := push.New(pushGateway, "call_scheduler").Gatherer(metrics.Registry).Push(); err != nil {
			log.Error().Err(err).Msg("Error pushing to Pushgateway")
		} else {
			log.Info().Str("url", pushGateway).Msg("Metrics pushed to Pushgateway")
		}
	}

	if wait && metricsAddr != "" {
		log.Info().Msg("Process kept alive for metric scraping. Press Ctrl+C to exit.")
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
	} else if metricsAddr != "" && pushGateway == "" {
		// Small delay to allow a final scrape; batch jobs should normally
		// use the Pushgateway or --wait instead.
		time.Sleep(100 * time.Millisecond)
	}

	return nil
}

func serveMetrics(addr string) {
	http.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	log.Info().Str("addr", addr).Msg("Metrics server listening")
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Error().Err(err).Msg("Metrics server error")
	}
}

func parseInput(path string) ([]models.CustomerRequirement, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input file: %w", err)
	}
	defer file.Close()

	start := time.Now()
	data, err := parser.Parse(file)
	metrics.ParserDurationSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ParserErrorsTotal.WithLabelValues(parseErrorType(err)).Inc()
		return nil, err
	}
	metrics.ParserRecordsTotal.Add(float64(len(data)))
	return data, nil
}

// parseErrorType maps a parse error to a stable metric label.
func parseErrorType(err error) string {
	switch {
	case stderrors.Is(err, schederrors.ErrMissingColumn):
		return "missing_column"
	case stderrors.Is(err, schederrors.ErrInvalidFieldCount):
		return "field_count"
	case stderrors.Is(err, schederrors.ErrEmptyCustomerName),
		stderrors.Is(err, schederrors.ErrDuplicateCustomer):
		return "customer_name"
	case stderrors.Is(err, schederrors.ErrInvalidDuration):
		return "duration"
	case stderrors.Is(err, schederrors.ErrInvalidStartTime),
		stderrors.Is(err, schederrors.ErrInvalidEndTime),
		stderrors.Is(err, schederrors.ErrInvalidWindow):
		return "time_window"
	case stderrors.Is(err, schederrors.ErrInvalidNumberOfCalls):
		return "number_of_calls"
	case stderrors.Is(err, schederrors.ErrInvalidPriority):
		return "priority"
	case stderrors.Is(err, schederrors.ErrEmptyRecord):
		return "empty_input"
	default:
		return "other"
	}
}

func logSummary(sched *models.Schedule) {
	totalAgents := 0
	peakAgents := 0
	unmetAgents := 0
	for _, hour := range sched.Hours {
		totalAgents += hour.TotalAgents
		if hour.TotalAgents > peakAgents {
			peakAgents = hour.TotalAgents
		}
		for _, u := range hour.Unmet {
			unmetAgents += u.Agents
		}
	}

	log.Info().
		Int("total_agent_hours", totalAgents).
		Int("peak_agents", peakAgents).
		Int("unmet_agent_hours", unmetAgents).
		Int("redistributions", len(sched.Moves)).
		Msg("Schedule generated")

	for i, m := range sched.Moves {
		if i >= 10 {
			log.Debug().Int("more", len(sched.Moves)-10).Msg("Further redistributions omitted")
			break
		}
		log.Debug().
			Str("customer", m.Customer).
			Int("from_hour", m.FromHour).
			Int("to_hour", m.ToHour).
			Str("calls", m.CallsMoved.StringFixed(2)).
			Msg("Redistributed calls")
	}
}
