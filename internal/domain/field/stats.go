package field

import (
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/scandex/internal/domain/record"
)

// SampleSize caps how many records feed weight estimation, independent
// of collection size.
const SampleSize = 100

// Base weights by field name. Short identifying fields outrank long
// prose fields; shorter average text additionally boosts the weight.
const (
	weightIdentity = 5 // title, name, heading
	weightSummary  = 3 // description, summary, subtitle
	weightProse    = 1 // content, body, text, everything else
)

// Stats is the derived importance profile of one field.
type Stats struct {
	path          Path
	averageLength float64
	weight        float64
}

// Path returns the field the stats describe.
func (s *Stats) Path() Path { return s.path }

// AverageLength returns the mean rune length of non-empty values in the
// sample, 0 when no record had one.
func (s *Stats) AverageLength() float64 { return s.averageLength }

// Weight returns the inferred importance multiplier.
func (s *Stats) Weight() float64 { return s.weight }

// Estimate derives field stats from at most the first SampleSize
// records.
func Estimate(sample []record.Value, p Path) Stats {
	if len(sample) > SampleSize {
		sample = sample[:SampleSize]
	}

	var total, count int
	for _, rec := range sample {
		if text := Extract(rec, p); text != "" {
			total += utf8.RuneCountInString(text)
			count++
		}
	}

	var avg float64
	if count > 0 {
		avg = float64(total) / float64(count)
	}

	return Stats{
		path:          p,
		averageLength: avg,
		weight:        baseWeight(p.Last()) * lengthWeight(avg),
	}
}

// EstimateAll derives stats for every path over a shared sample.
func EstimateAll(sample []record.Value, paths []Path) []Stats {
	if len(sample) > SampleSize {
		sample = sample[:SampleSize]
	}
	out := make([]Stats, len(paths))
	for i, p := range paths {
		out[i] = Estimate(sample, p)
	}
	return out
}

func baseWeight(name string) float64 {
	switch strings.ToLower(name) {
	case "title", "name", "heading":
		return weightIdentity
	case "description", "summary", "subtitle":
		return weightSummary
	case "content", "body", "text":
		return weightProse
	default:
		return 1
	}
}

func lengthWeight(avg float64) float64 {
	switch {
	case avg < 50:
		return 2.0
	case avg < 100:
		return 1.5
	case avg < 300:
		return 1.2
	default:
		return 1.0
	}
}
