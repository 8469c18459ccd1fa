package field

import (
	"fmt"
	"strings"
	"testing"

	"github.com/kailas-cloud/scandex/internal/domain/record"
)

func recordsWithField(key string, values ...string) []record.Value {
	recs := make([]record.Value, len(values))
	for i, v := range values {
		recs[i] = record.Object(record.Field{Key: key, Value: record.String(v)})
	}
	return recs
}

func TestEstimate_AverageLength(t *testing.T) {
	recs := recordsWithField("name", "abcd", "ab")
	s := Estimate(recs, "name")
	if s.AverageLength() != 3 {
		t.Errorf("AverageLength() = %v, want 3", s.AverageLength())
	}
}

func TestEstimate_EmptyValuesExcludedFromAverage(t *testing.T) {
	recs := recordsWithField("name", "abcd", "", "ab")
	s := Estimate(recs, "name")
	if s.AverageLength() != 3 {
		t.Errorf("AverageLength() = %v, want 3 (empty values excluded)", s.AverageLength())
	}
}

func TestEstimate_NoValues(t *testing.T) {
	recs := recordsWithField("other", "x")
	s := Estimate(recs, "name")
	if s.AverageLength() != 0 {
		t.Errorf("AverageLength() = %v, want 0", s.AverageLength())
	}
	// name base 5, avg 0 < 50 gives length weight 2.0
	if s.Weight() != 10 {
		t.Errorf("Weight() = %v, want 10", s.Weight())
	}
}

func TestEstimate_BaseWeights(t *testing.T) {
	tests := []struct {
		field string
		want  float64
	}{
		{"title", 5},
		{"name", 5},
		{"heading", 5},
		{"Title", 5}, // case-insensitive
		{"description", 3},
		{"summary", 3},
		{"subtitle", 3},
		{"content", 1},
		{"body", 1},
		{"text", 1},
		{"sku", 1},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			// Long values pin the length weight at 1.0.
			recs := recordsWithField(tt.field, strings.Repeat("x", 400))
			s := Estimate(recs, Path(tt.field))
			if s.Weight() != tt.want {
				t.Errorf("Weight() = %v, want %v", s.Weight(), tt.want)
			}
		})
	}
}

func TestEstimate_BaseWeightUsesLastSegment(t *testing.T) {
	recs := []record.Value{record.Object(
		record.Field{Key: "author", Value: record.Object(
			record.Field{Key: "name", Value: record.String(strings.Repeat("x", 400))},
		)},
	)}
	s := Estimate(recs, "author.name")
	if s.Weight() != 5 {
		t.Errorf("Weight() = %v, want 5 (last segment is name)", s.Weight())
	}
}

func TestEstimate_LengthWeightTiers(t *testing.T) {
	tests := []struct {
		length int
		want   float64
	}{
		{10, 2.0},
		{49, 2.0},
		{50, 1.5},
		{99, 1.5},
		{100, 1.2},
		{299, 1.2},
		{300, 1.0},
		{1000, 1.0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("len=%d", tt.length), func(t *testing.T) {
			// sku has base weight 1, so Weight() equals the length weight.
			recs := recordsWithField("sku", strings.Repeat("x", tt.length))
			s := Estimate(recs, "sku")
			if s.Weight() != tt.want {
				t.Errorf("Weight() = %v, want %v", s.Weight(), tt.want)
			}
		})
	}
}

func TestEstimate_SampleCap(t *testing.T) {
	// First 100 records are short; the rest are long and must not
	// influence the average.
	recs := make([]record.Value, 0, 150)
	for i := 0; i < 100; i++ {
		recs = append(recs, record.Object(record.Field{Key: "sku", Value: record.String("ab")}))
	}
	for i := 0; i < 50; i++ {
		recs = append(recs, record.Object(record.Field{Key: "sku", Value: record.String(strings.Repeat("x", 500))}))
	}
	s := Estimate(recs, "sku")
	if s.AverageLength() != 2 {
		t.Errorf("AverageLength() = %v, want 2 (sample capped at %d)", s.AverageLength(), SampleSize)
	}
}

func TestEstimate_RuneCounting(t *testing.T) {
	recs := recordsWithField("sku", "яяяя")
	s := Estimate(recs, "sku")
	if s.AverageLength() != 4 {
		t.Errorf("AverageLength() = %v, want 4 runes", s.AverageLength())
	}
}

func TestEstimateAll(t *testing.T) {
	recs := []record.Value{record.Object(
		record.Field{Key: "title", Value: record.String("short")},
		record.Field{Key: "body", Value: record.String(strings.Repeat("x", 400))},
	)}
	stats := EstimateAll(recs, []Path{"title", "body"})
	if len(stats) != 2 {
		t.Fatalf("len = %d", len(stats))
	}
	if stats[0].Path() != "title" || stats[0].Weight() != 10 {
		t.Errorf("stats[0] = %q %v, want title 10", stats[0].Path(), stats[0].Weight())
	}
	if stats[1].Path() != "body" || stats[1].Weight() != 1 {
		t.Errorf("stats[1] = %q %v, want body 1", stats[1].Path(), stats[1].Weight())
	}
}
