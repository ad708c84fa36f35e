// Package baseline compares the findings of one scan against a previous
// JSON report, so repeated recon runs surface posture drift instead of the
// same known issues.
package baseline

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ppiankov/tenantspectre/internal/report"
)

// Finding is a flattened, identity-comparable issue from a scan.
type Finding struct {
	RuleID   string `json:"rule_id"`
	Location string `json:"location"`
}

func (f Finding) key() string {
	return fmt.Sprintf("%s|%s", f.RuleID, f.Location)
}

// DiffResult holds the outcome of comparing current findings against a baseline.
type DiffResult struct {
	New       []Finding
	Resolved  []Finding
	Unchanged []Finding
}

// Flatten converts a scan report into a flat finding list. Findings keep
// their rule identity plus the scanned domain, so baselines from a different
// domain never produce spurious "resolved" entries.
func Flatten(data report.Data) []Finding {
	if data.Analysis == nil {
		return nil
	}
	var findings []Finding
	for _, f := range data.Analysis.Findings {
		findings = append(findings, Finding{
			RuleID:   f.RuleID,
			Location: data.Config.Domain,
		})
	}
	return findings
}

// Load reads a previous scan JSON report and extracts its findings.
func Load(path string) ([]Finding, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read baseline: %w", err)
	}
	var data report.Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse baseline: %w", err)
	}
	return Flatten(data), nil
}

// Diff compares current findings against a baseline.
func Diff(current, baseline []Finding) DiffResult {
	baseMap := make(map[string]struct{}, len(baseline))
	for _, f := range baseline {
		baseMap[f.key()] = struct{}{}
	}
	curMap := make(map[string]struct{}, len(current))
	for _, f := range current {
		curMap[f.key()] = struct{}{}
	}

	var result DiffResult
	for _, f := range current {
		if _, exists := baseMap[f.key()]; exists {
			result.Unchanged = append(result.Unchanged, f)
		} else {
			result.New = append(result.New, f)
		}
	}
	for _, f := range baseline {
		if _, exists := curMap[f.key()]; !exists {
			result.Resolved = append(result.Resolved, f)
		}
	}
	return result
}
