package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ppiankov/tenantspectre/internal/report"
)

func TestScanFlagDefaults(t *testing.T) {
	if scanFlags.cloud != "commercial" {
		t.Fatalf("expected default cloud 'commercial', got %q", scanFlags.cloud)
	}
	if scanFlags.outputFormat != "text" {
		t.Fatalf("expected default format 'text', got %q", scanFlags.outputFormat)
	}
	if scanFlags.dnsServer != "8.8.8.8:53" {
		t.Fatalf("expected default dns server 8.8.8.8:53, got %q", scanFlags.dnsServer)
	}
	if scanFlags.userAgent == "" {
		t.Fatalf("expected a non-empty default user agent")
	}
	if scanCmd.Flags().Lookup("format").DefValue != "text" {
		t.Fatalf("expected flag default format text, got %q", scanCmd.Flags().Lookup("format").DefValue)
	}
}

func TestScanSelectReporter(t *testing.T) {
	var buf bytes.Buffer

	reporter, err := selectReporter("json", &buf)
	if err != nil {
		t.Fatalf("expected no error for json, got %v", err)
	}
	if _, ok := reporter.(*report.JSONReporter); !ok {
		t.Fatalf("expected JSONReporter, got %T", reporter)
	}

	reporter, err = selectReporter("text", &buf)
	if err != nil {
		t.Fatalf("expected no error for text, got %v", err)
	}
	if _, ok := reporter.(*report.TextReporter); !ok {
		t.Fatalf("expected TextReporter, got %T", reporter)
	}

	reporter, err = selectReporter("sarif", &buf)
	if err != nil {
		t.Fatalf("expected no error for sarif, got %v", err)
	}
	if _, ok := reporter.(*report.SARIFReporter); !ok {
		t.Fatalf("expected SARIFReporter, got %T", reporter)
	}

	reporter, err = selectReporter("spectre", &buf)
	if err != nil {
		t.Fatalf("expected no error for spectre, got %v", err)
	}
	if _, ok := reporter.(*report.SpectreHubReporter); !ok {
		t.Fatalf("expected SpectreHubReporter, got %T", reporter)
	}

	_, err = selectReporter("xml", &buf)
	if err == nil {
		t.Fatalf("expected error for unsupported format")
	}
	if !strings.Contains(err.Error(), "unsupported output format") {
		t.Fatalf("unexpected error message: %v", err)
	}
}

func TestRunScanRequiresDomain(t *testing.T) {
	oldDomain := scanFlags.domain
	scanFlags.domain = "   "
	t.Cleanup(func() { scanFlags.domain = oldDomain })

	err := runScan(scanCmd, nil)
	if err == nil || !strings.Contains(err.Error(), "domain is required") {
		t.Fatalf("expected missing-domain error, got %v", err)
	}
}

func TestRunScanRejectsUnknownCloud(t *testing.T) {
	oldDomain, oldCloud := scanFlags.domain, scanFlags.cloud
	scanFlags.domain = "contoso.com"
	scanFlags.cloud = "galactic"
	t.Cleanup(func() {
		scanFlags.domain = oldDomain
		scanFlags.cloud = oldCloud
	})

	err := runScan(scanCmd, nil)
	if err == nil || !strings.Contains(err.Error(), "unknown cloud environment") {
		t.Fatalf("expected unknown-cloud error, got %v", err)
	}
}

func TestRunScanRejectsBadUserAgent(t *testing.T) {
	oldDomain, oldUA := scanFlags.domain, scanFlags.userAgent
	scanFlags.domain = "contoso.com"
	scanFlags.userAgent = "bad\nagent"
	t.Cleanup(func() {
		scanFlags.domain = oldDomain
		scanFlags.userAgent = oldUA
	})

	err := runScan(scanCmd, nil)
	if err == nil || !strings.Contains(err.Error(), "User-Agent") {
		t.Fatalf("expected user-agent error, got %v", err)
	}
}

func TestRunScanSurfacesConfigError(t *testing.T) {
	oldErr := cfgErr
	cfgErr = bytes.ErrTooLarge
	t.Cleanup(func() { cfgErr = oldErr })

	err := runScan(scanCmd, nil)
	if err == nil || !strings.Contains(err.Error(), "config file") {
		t.Fatalf("expected config error to be fatal, got %v", err)
	}
}
