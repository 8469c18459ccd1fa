package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/kailas-cloud/scandex"
)

const maxValueRunes = 60

// jsonOutput is the machine-readable result envelope.
type jsonOutput struct {
	Count   int              `json:"count"`
	TookMS  float64          `json:"took_ms"`
	Results []scandex.Result `json:"results"`
}

func printResults(w io.Writer, results []scandex.Result, took time.Duration, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(jsonOutput{
			Count:   len(results),
			TookMS:  float64(took.Microseconds()) / 1000,
			Results: results,
		})
	}

	fmt.Fprintf(w, "%d results in %v\n", len(results), took.Round(time.Microsecond))
	for i, r := range results {
		fmt.Fprintf(w, "%3d. #%d score=%.2f\n", i+1, r.Index, r.Score)
		for _, m := range r.Matches {
			pos := ""
			if m.Position != scandex.NoPosition {
				pos = fmt.Sprintf(" @%d", m.Position)
			}
			fmt.Fprintf(w, "     %s %s%s: %s\n", m.Kind, m.Field, pos, truncate(m.Value))
		}
	}
	return nil
}

func printStats(w io.Writer, stats scandex.CacheStats) {
	fmt.Fprintf(w, "lowercase=%d fieldsets=%d stats=%d\n",
		stats.LowercaseEntries, stats.FieldSetEntries, stats.StatsEntries)
}

// truncate shortens long field values for terminal output.
func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxValueRunes {
		return s
	}
	return string(runes[:maxValueRunes]) + "…"
}
