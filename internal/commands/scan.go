package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/ppiankov/tenantspectre/internal/analyzer"
	"github.com/ppiankov/tenantspectre/internal/baseline"
	"github.com/ppiankov/tenantspectre/internal/config"
	"github.com/ppiankov/tenantspectre/internal/probe"
	"github.com/ppiankov/tenantspectre/internal/recon"
	"github.com/ppiankov/tenantspectre/internal/report"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

var scanFlags struct {
	domain       string
	cloud        string
	jsonOutput   bool
	outputFormat string
	outputFile   string
	timeout      time.Duration
	userAgent    string
	dnsServer    string
	baselinePath string
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a domain's Microsoft cloud footprint",
	Long: `Probes the unauthenticated surfaces of a domain's Microsoft cloud presence:
DNS indicators, federation and OpenID configuration, seamless SSO, M365
service endpoints, and speculative Azure hosting names.

Every probe is a single attempt; individual failures degrade the report
instead of aborting it.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanFlags.domain, "domain", "d", "", "Target domain to scan (required)")
	scanCmd.Flags().StringVarP(&scanFlags.cloud, "cloud", "c", "commercial", "Target cloud: commercial, gcc, gcc-high, dod, or china")
	scanCmd.Flags().BoolVar(&scanFlags.jsonOutput, "json", false, "Shorthand for --format json")
	scanCmd.Flags().StringVarP(&scanFlags.outputFormat, "format", "f", "text", "Output format: text, json, sarif, or spectre")
	scanCmd.Flags().StringVarP(&scanFlags.outputFile, "output", "o", "", "Output file (default: stdout)")
	scanCmd.Flags().DurationVar(&scanFlags.timeout, "timeout", 0, "Per-request probe timeout (e.g. 10s). 0 uses the default")
	scanCmd.Flags().StringVar(&scanFlags.userAgent, "user-agent", defaultUserAgent, "User-Agent header sent with every probe")
	scanCmd.Flags().StringVar(&scanFlags.dnsServer, "dns-server", config.DefaultDNSServer, "DNS server (host:port) for record lookups")
	scanCmd.Flags().StringVar(&scanFlags.baselinePath, "baseline", "", "Path to previous JSON report for finding diff")
}

// slogObserver logs probe group completions as they merge.
type slogObserver struct{}

func (slogObserver) GroupCompleted(category string, err error) {
	if err != nil {
		slog.Warn("Probe group failed", "category", category, "error", err)
		return
	}
	slog.Debug("Probe group completed", "category", category)
}

func runScan(cmd *cobra.Command, args []string) error {
	if cfgErr != nil {
		return fmt.Errorf("config file: %w", cfgErr)
	}
	applyConfigToScanFlags(cmd)

	domain := strings.TrimSpace(strings.ToLower(scanFlags.domain))
	if domain == "" {
		return fmt.Errorf("a target domain is required (--domain)")
	}

	cloud, err := config.ParseCloud(scanFlags.cloud)
	if err != nil {
		return err
	}
	profile, err := config.ProfileFor(cloud)
	if err != nil {
		return err
	}

	if scanFlags.jsonOutput && !cmd.Flags().Lookup("format").Changed {
		scanFlags.outputFormat = "json"
	}

	timeout := scanFlags.timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}

	client, err := probe.NewClient(timeout, scanFlags.userAgent)
	if err != nil {
		return enhanceError("probe client setup", err)
	}
	resolver := recon.NewResolver(scanFlags.dnsServer, timeout)

	start := time.Now()
	printStatus("Scanning %s (%s cloud)", domain, cloud)

	runner := recon.NewRunner(client, resolver, profile, slogObserver{})
	results := runner.Run(context.Background(), domain)

	analysis := analyzer.Analyze(results)

	reportData := report.Data{
		Tool:      "tenantspectre",
		Version:   GetVersion(),
		Timestamp: time.Now(),
		Config: report.Config{
			Domain: domain,
			Cloud:  string(cloud),
		},
		Results:  results,
		Analysis: analysis,
	}

	writer := os.Stdout
	if scanFlags.outputFile != "" {
		f, err := os.Create(scanFlags.outputFile)
		if err != nil {
			return enhanceError("output file creation", err)
		}
		defer func() { _ = f.Close() }()
		writer = f
	}

	// Colored output only when a human is watching stdout.
	if scanFlags.outputFile != "" || !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}

	reporter, err := selectReporter(scanFlags.outputFormat, writer)
	if err != nil {
		return err
	}
	if err := reporter.Generate(reportData); err != nil {
		return enhanceError("report generation", err)
	}

	if scanFlags.baselinePath != "" {
		baselineFindings, err := baseline.Load(scanFlags.baselinePath)
		if err != nil {
			return enhanceError("baseline load", err)
		}
		diff := baseline.Diff(baseline.Flatten(reportData), baselineFindings)
		slog.Info("Baseline comparison",
			slog.Int("new", len(diff.New)),
			slog.Int("resolved", len(diff.Resolved)),
			slog.Int("unchanged", len(diff.Unchanged)),
		)
	}

	slog.Info("Scan complete",
		slog.String("domain", domain),
		slog.Int("finding_count", analysis.Summary.Total),
		slog.Duration("duration", time.Since(start)),
	)

	return nil
}

func applyConfigToScanFlags(cmd *cobra.Command) {
	if !cmd.Flags().Lookup("format").Changed && cfg.Format != "" {
		scanFlags.outputFormat = cfg.Format
	}
	if !cmd.Flags().Lookup("timeout").Changed {
		if d := cfg.TimeoutDuration(); d > 0 {
			scanFlags.timeout = d
		}
	}
	if !cmd.Flags().Lookup("user-agent").Changed && cfg.UserAgent != "" {
		scanFlags.userAgent = cfg.UserAgent
	}
	if !cmd.Flags().Lookup("dns-server").Changed && cfg.DNSServer != "" {
		scanFlags.dnsServer = cfg.DNSServer
	}
}
