package report

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// spectre/v1 envelope types

type spectreEnvelope struct {
	Schema    string           `json:"schema"`
	Tool      string           `json:"tool"`
	Version   string           `json:"version"`
	Timestamp string           `json:"timestamp"`
	Target    spectreTarget    `json:"target"`
	Findings  []spectreFinding `json:"findings"`
	Summary   spectreSummary   `json:"summary"`
}

type spectreTarget struct {
	Type    string `json:"type"`
	URIHash string `json:"uri_hash"`
}

type spectreFinding struct {
	ID       string         `json:"id"`
	Severity string         `json:"severity"`
	Location string         `json:"location"`
	Message  string         `json:"message"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type spectreSummary struct {
	Total  int `json:"total"`
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
	Info   int `json:"info"`
}

// HashTarget produces a sha256 hash of the scanned domain and cloud for
// target identification without repeating the raw domain in aggregators.
func HashTarget(domain, cloud string) string {
	input := domain + ":" + cloud
	h := sha256.Sum256([]byte(input))
	return fmt.Sprintf("sha256:%x", h)
}

// SpectreHubReporter generates spectre/v1 JSON envelope output.
type SpectreHubReporter struct {
	writer io.Writer
}

// NewSpectreHubReporter creates a new SpectreHub reporter.
func NewSpectreHubReporter(w io.Writer) *SpectreHubReporter {
	return &SpectreHubReporter{writer: w}
}

// Generate writes scan results as a spectre/v1 envelope.
func (r *SpectreHubReporter) Generate(data Data) error {
	envelope := spectreEnvelope{
		Schema:    "spectre/v1",
		Tool:      data.Tool,
		Version:   data.Version,
		Timestamp: data.Timestamp.UTC().Format("2006-01-02T15:04:05Z"),
		Target: spectreTarget{
			Type:    "tenant",
			URIHash: HashTarget(data.Config.Domain, data.Config.Cloud),
		},
	}

	if data.Analysis != nil {
		for _, f := range data.Analysis.Findings {
			severity := strings.ToLower(string(f.Severity))
			finding := spectreFinding{
				ID:       f.RuleID,
				Severity: severity,
				Location: data.Config.Domain,
				Message:  f.Description,
			}
			if f.Evidence != "" {
				finding.Metadata = map[string]any{"evidence": f.Evidence}
			}
			envelope.Findings = append(envelope.Findings, finding)
			countSeverity(&envelope.Summary, severity)
		}
	}

	envelope.Summary.Total = len(envelope.Findings)
	if envelope.Findings == nil {
		envelope.Findings = []spectreFinding{}
	}

	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(envelope)
}

func countSeverity(s *spectreSummary, severity string) {
	switch severity {
	case "high":
		s.High++
	case "medium":
		s.Medium++
	case "low":
		s.Low++
	case "info":
		s.Info++
	}
}
