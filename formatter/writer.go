package formatter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var extensions = map[string]string{
	"text": "txt",
	"json": "json",
	"csv":  "csv",
}

// WriteResultFile persists rendered output under resultsDir with a
// descriptive name:
//
//	{timestamp}_{input}_util{u}[_cap{K}][_{algorithm}]_RESULT.{ext}
//
// The algorithm only appears in the name when a capacity is set and the
// algorithm is not the default greedy one. Returns the written path.
func WriteResultFile(content, format, inputPath string, utilization float64, capacity *int, algorithm, resultsDir string) (string, error) {
	if err := os.MkdirAll(resultsDir, 0755); err != nil {
		return "", fmt.Errorf("creating results directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	inputName := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))

	// Trim trailing zeros so 1.00 renders as util1 and 0.85 as util0.85.
	utilStr := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", utilization), "0"), ".")

	nameParts := []string{timestamp, inputName, "util" + utilStr}
	if capacity != nil {
		nameParts = append(nameParts, fmt.Sprintf("cap%d", *capacity))
		if algorithm != "" && algorithm != "greedy" {
			nameParts = append(nameParts, algorithm)
		}
	}

	ext, ok := extensions[format]
	if !ok {
		ext = "txt"
	}

	filename := filepath.Join(resultsDir, strings.Join(nameParts, "_")+"_RESULT."+ext)
	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing result file: %w", err)
	}
	return filename, nil
}
