package report

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/ppiankov/tenantspectre/internal/analyzer"
)

const (
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
	sarifVersion = "2.1.0"
)

type SARIFReporter struct {
	writer io.Writer
}

func NewSARIFReporter(w io.Writer) *SARIFReporter {
	return &SARIFReporter{writer: w}
}

type sarifLog struct {
	Schema  string     `json:"$schema,omitempty"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results,omitempty"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	Name             string       `json:"name,omitempty"`
	ShortDescription sarifMessage `json:"shortDescription,omitempty"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level,omitempty"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation *sarifPhysicalLocation `json:"physicalLocation,omitempty"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

// Generate emits one SARIF result per analyzer finding. The rule table only
// lists rules that actually fired, sorted by ID for stable output.
func (r *SARIFReporter) Generate(data Data) error {
	var results []sarifResult
	usedRules := make(map[string]sarifRule)

	domainURI := "https://" + data.Config.Domain

	if data.Analysis != nil {
		for _, f := range data.Analysis.Findings {
			ruleID := data.Tool + "/" + f.RuleID
			if _, exists := usedRules[ruleID]; !exists {
				usedRules[ruleID] = sarifRule{
					ID:               ruleID,
					Name:             f.RuleID,
					ShortDescription: sarifMessage{Text: f.Title},
				}
			}

			message := f.Description
			if f.Evidence != "" {
				message = message + " Evidence: " + f.Evidence
			}

			results = append(results, sarifResult{
				RuleID:  ruleID,
				Level:   sarifLevel(f.Severity),
				Message: sarifMessage{Text: message},
				Locations: []sarifLocation{{
					PhysicalLocation: &sarifPhysicalLocation{
						ArtifactLocation: sarifArtifactLocation{URI: domainURI},
					},
				}},
			})
		}
	}

	ruleIDs := make([]string, 0, len(usedRules))
	for id := range usedRules {
		ruleIDs = append(ruleIDs, id)
	}
	sort.Strings(ruleIDs)

	rules := make([]sarifRule, 0, len(ruleIDs))
	for _, id := range ruleIDs {
		rules = append(rules, usedRules[id])
	}

	log := sarifLog{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []sarifRun{{
			Tool: sarifTool{
				Driver: sarifDriver{
					Name:    data.Tool,
					Version: data.Version,
					Rules:   rules,
				},
			},
			Results: results,
		}},
	}

	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(log)
}

func sarifLevel(s analyzer.Severity) string {
	switch s {
	case analyzer.SeverityHigh:
		return "error"
	case analyzer.SeverityMedium:
		return "warning"
	case analyzer.SeverityLow:
		return "note"
	default:
		return "none"
	}
}
