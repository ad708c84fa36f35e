package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/ppiankov/tenantspectre/internal/analyzer"
)

func generateSARIF(t *testing.T, data Data) sarifLog {
	t.Helper()
	var buf bytes.Buffer
	if err := NewSARIFReporter(&buf).Generate(data); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	return log
}

func TestSARIFReporterStructure(t *testing.T) {
	log := generateSARIF(t, sampleData())

	if log.Version != sarifVersion {
		t.Errorf("version = %q", log.Version)
	}
	if len(log.Runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(log.Runs))
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "tenantspectre" {
		t.Errorf("driver name = %q", run.Tool.Driver.Name)
	}
	if len(run.Results) != 1 {
		t.Fatalf("results = %d, want 1", len(run.Results))
	}

	res := run.Results[0]
	if res.RuleID != "tenantspectre/"+analyzer.RuleLegacyAuthEWS {
		t.Errorf("ruleId = %q", res.RuleID)
	}
	if res.Level != "error" {
		t.Errorf("level = %q, want error for a high finding", res.Level)
	}
	if len(res.Locations) != 1 || res.Locations[0].PhysicalLocation.ArtifactLocation.URI != "https://contoso.com" {
		t.Errorf("locations = %+v", res.Locations)
	}
}

func TestSARIFReporterRuleTableIsDeduplicatedAndSorted(t *testing.T) {
	data := sampleData()
	data.Analysis = &analyzer.Result{
		Findings: []analyzer.Finding{
			{RuleID: analyzer.RuleLegacyAuthEWS, Severity: analyzer.SeverityHigh, Title: "a"},
			{RuleID: analyzer.RuleLegacyAuthEWS, Severity: analyzer.SeverityHigh, Title: "b"},
			{RuleID: analyzer.RuleDMARCMissing, Severity: analyzer.SeverityMedium, Title: "c"},
		},
	}

	log := generateSARIF(t, data)
	rules := log.Runs[0].Tool.Driver.Rules
	if len(rules) != 2 {
		t.Fatalf("rules = %d, want 2 after dedupe", len(rules))
	}
	if rules[0].ID > rules[1].ID {
		t.Errorf("rules not sorted: %q, %q", rules[0].ID, rules[1].ID)
	}
	if len(log.Runs[0].Results) != 3 {
		t.Errorf("results = %d, want one per finding", len(log.Runs[0].Results))
	}
}

func TestSARIFReporterNoFindings(t *testing.T) {
	data := sampleData()
	data.Analysis = &analyzer.Result{}

	log := generateSARIF(t, data)
	if len(log.Runs[0].Results) != 0 {
		t.Errorf("results = %v, want none", log.Runs[0].Results)
	}
	if len(log.Runs[0].Tool.Driver.Rules) != 0 {
		t.Errorf("rules = %v, want none", log.Runs[0].Tool.Driver.Rules)
	}
}

func TestSARIFLevelMapping(t *testing.T) {
	tests := []struct {
		severity analyzer.Severity
		want     string
	}{
		{analyzer.SeverityHigh, "error"},
		{analyzer.SeverityMedium, "warning"},
		{analyzer.SeverityLow, "note"},
		{analyzer.SeverityInfo, "none"},
	}
	for _, tt := range tests {
		if got := sarifLevel(tt.severity); got != tt.want {
			t.Errorf("sarifLevel(%s) = %q, want %q", tt.severity, got, tt.want)
		}
	}
}
