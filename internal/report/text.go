package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/ppiankov/tenantspectre/internal/analyzer"
	"github.com/ppiankov/tenantspectre/internal/recon"
)

// TextReporter generates human-readable text reports
type TextReporter struct {
	writer io.Writer
}

// NewTextReporter creates a new text reporter
func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{writer: w}
}

// Generate generates a text report. Section order is fixed so diffs between
// runs stay readable.
func (r *TextReporter) Generate(data Data) error {
	fmt.Fprintf(r.writer, "TenantSpectre Report\n")
	fmt.Fprintf(r.writer, "====================\n\n")
	fmt.Fprintf(r.writer, "Scan Time: %s\n", data.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(r.writer, "Domain: %s\n", data.Config.Domain)
	fmt.Fprintf(r.writer, "Cloud: %s\n", data.Config.Cloud)
	fmt.Fprintf(r.writer, "\n")

	results := data.Results
	if results == nil {
		fmt.Fprintf(r.writer, "%s\n", color.RedString("No scan results"))
		return nil
	}

	r.printDNS(results.DNSResults)
	r.printTenantInfo(results.TenantInfo)
	r.printFederation(results.FederationInfo)
	r.printAzureAD(results.AzureADConfig)
	r.printHybridStatus(results.AADConnectStatus)
	r.printM365(results.M365Results)
	r.printAzureServices(results.AzureServiceResults)

	if data.Analysis != nil {
		r.printFindings(data.Analysis)
	}

	return nil
}

func (r *TextReporter) section(title string) {
	fmt.Fprintf(r.writer, "%s\n", title)
	fmt.Fprintf(r.writer, "%s\n", strings.Repeat("-", len(title)))
}

func (r *TextReporter) printDNS(dns *recon.DNSResults) {
	r.section("DNS Indicators")
	if dns == nil {
		fmt.Fprintf(r.writer, "%s\n\n", color.YellowString("DNS probes did not complete"))
		return
	}

	if boolValue(dns.MXRecordsFound) {
		fmt.Fprintf(r.writer, "MX Records: %s\n", color.GreenString("found (%d)", len(dns.MXRecords)))
		for _, mx := range dns.MXRecords {
			fmt.Fprintf(r.writer, "  - %s\n", mx)
		}
	} else {
		fmt.Fprintf(r.writer, "MX Records: %s\n", color.YellowString("none"))
	}

	r.printRecord("SPF Record", dns.SPFRecord, dns.SPFRecordFound)
	r.printRecord("DMARC Record", dns.DMARCRecord, dns.DMARCRecordFound)
	if dns.DMARCPolicy != nil {
		fmt.Fprintf(r.writer, "DMARC Policy: %s\n", *dns.DMARCPolicy)
	}
	r.printRecord("MS Verification TXT", dns.MSTXTRecord, dns.MSTXTFound)

	if dns.AutodiscoverCNAMEOrA != nil {
		fmt.Fprintf(r.writer, "Autodiscover: %s\n", color.GreenString(*dns.AutodiscoverCNAMEOrA))
	} else {
		fmt.Fprintf(r.writer, "Autodiscover: %s\n", color.YellowString("not found"))
	}
	fmt.Fprintf(r.writer, "Lyncdiscover: %s\n", presence(dns.LyncDiscoverPresent))
	fmt.Fprintf(r.writer, "SIP: %s\n", presence(dns.SIPCNAMEOrAPresent))
	fmt.Fprintf(r.writer, "Enterprise Registration: %s\n", presence(dns.EnterpriseRegistrationPresent))
	fmt.Fprintf(r.writer, "Enterprise Enrollment: %s\n", presence(dns.EnterpriseEnrollmentPresent))
	fmt.Fprintf(r.writer, "\n")
}

func (r *TextReporter) printRecord(name string, value *string, found *bool) {
	if boolValue(found) && value != nil {
		fmt.Fprintf(r.writer, "%s: %s\n", name, color.GreenString("present"))
		fmt.Fprintf(r.writer, "  %s\n", *value)
	} else {
		fmt.Fprintf(r.writer, "%s: %s\n", name, color.RedString("missing"))
	}
}

func (r *TextReporter) printTenantInfo(info *recon.TenantInfo) {
	r.section("Tenant Identity")
	if info == nil {
		fmt.Fprintf(r.writer, "%s\n\n", color.YellowString("No identity signals collected"))
		return
	}
	if info.TenantID != nil {
		fmt.Fprintf(r.writer, "Tenant ID: %s\n", color.GreenString(*info.TenantID))
	}
	if info.CloudInstanceName != nil {
		fmt.Fprintf(r.writer, "Cloud Instance: %s\n", *info.CloudInstanceName)
	}
	if info.LikelyM365Usage != nil {
		fmt.Fprintf(r.writer, "Likely M365 Usage: %s\n", yesNo(*info.LikelyM365Usage))
	}
	fmt.Fprintf(r.writer, "\n")
}

func (r *TextReporter) printFederation(fed *recon.FederationInfo) {
	r.section("Federation")
	if fed == nil {
		fmt.Fprintf(r.writer, "%s\n\n", color.YellowString("Federation probe did not complete"))
		return
	}
	if fed.NameSpaceType != nil {
		fmt.Fprintf(r.writer, "Namespace Type: %s\n", *fed.NameSpaceType)
	}
	fmt.Fprintf(r.writer, "Federated: %s\n", yesNo(fed.IsFederated))
	if fed.FederationBrandName != nil {
		fmt.Fprintf(r.writer, "Brand Name: %s\n", *fed.FederationBrandName)
	}
	fmt.Fprintf(r.writer, "\n")
}

func (r *TextReporter) printAzureAD(cfg *recon.AzureADConfig) {
	r.section("Azure AD Configuration")
	if cfg == nil {
		fmt.Fprintf(r.writer, "%s\n\n", color.YellowString("OpenID configuration probe did not complete"))
		return
	}
	if cfg.Issuer != nil {
		fmt.Fprintf(r.writer, "Issuer: %s\n", *cfg.Issuer)
	}
	if cfg.AuthorizationEndpoint != nil {
		fmt.Fprintf(r.writer, "Authorization Endpoint: %s\n", *cfg.AuthorizationEndpoint)
	}
	if cfg.TokenEndpoint != nil {
		fmt.Fprintf(r.writer, "Token Endpoint: %s\n", *cfg.TokenEndpoint)
	}
	if cfg.TenantRegionScope != nil {
		fmt.Fprintf(r.writer, "Tenant Region: %s\n", *cfg.TenantRegionScope)
	}
	fmt.Fprintf(r.writer, "\n")
}

func (r *TextReporter) printHybridStatus(status *recon.HybridStatus) {
	r.section("AAD Connect")
	if status == nil {
		fmt.Fprintf(r.writer, "%s\n\n", color.YellowString("Hybrid status probe did not complete"))
		return
	}
	switch *status {
	case recon.StatusHybrid:
		fmt.Fprintf(r.writer, "Identity Topology: %s\n", color.YellowString("Hybrid (seamless SSO exposed)"))
	case recon.StatusCloudOnly:
		fmt.Fprintf(r.writer, "Identity Topology: %s\n", color.GreenString("CloudOnly"))
	default:
		fmt.Fprintf(r.writer, "Identity Topology: %s\n", color.YellowString("Unknown"))
	}
	fmt.Fprintf(r.writer, "\n")
}

func (r *TextReporter) printM365(m365 *recon.M365Results) {
	r.section("Microsoft 365 Services")
	if m365 == nil {
		fmt.Fprintf(r.writer, "%s\n\n", color.YellowString("Service probes did not complete"))
		return
	}
	fmt.Fprintf(r.writer, "SharePoint: %s\n", detected(m365.SharePointDetected))
	fmt.Fprintf(r.writer, "Teams: %s\n", detected(m365.TeamsDetected))
	fmt.Fprintf(r.writer, "Tenant Branding: %s\n", detected(m365.TenantBrandingAccessible))
	fmt.Fprintf(r.writer, "Legacy Auth (EWS): %s\n", reachable(m365.LegacyAuthEWSEnabled))
	fmt.Fprintf(r.writer, "Legacy Auth (ActiveSync): %s\n", reachable(m365.LegacyAuthActiveSyncEnabled))
	fmt.Fprintf(r.writer, "\n")
}

func (r *TextReporter) printAzureServices(svc *recon.AzureServiceResults) {
	r.section("Azure Hosting")
	if svc == nil {
		fmt.Fprintf(r.writer, "%s\n\n", color.YellowString("Hosting probes did not complete"))
		return
	}
	r.printEndpointList("App Services", svc.ProbableAppServices)
	r.printEndpointList("Storage Accounts", svc.ProbableStorageAccounts)
	r.printEndpointList("CDN Endpoints", svc.ProbableCDNEndpoints)
	fmt.Fprintf(r.writer, "\n")
}

func (r *TextReporter) printEndpointList(name string, urls []string) {
	if len(urls) == 0 {
		fmt.Fprintf(r.writer, "%s: %s\n", name, color.GreenString("none found"))
		return
	}
	fmt.Fprintf(r.writer, "%s:\n", name)
	for _, u := range urls {
		fmt.Fprintf(r.writer, "  - %s\n", color.YellowString(u))
	}
}

func (r *TextReporter) printFindings(analysis *analyzer.Result) {
	r.section("Findings")
	if len(analysis.Findings) == 0 {
		fmt.Fprintf(r.writer, "%s\n\n", color.GreenString("No findings"))
		return
	}

	for _, f := range analysis.Findings {
		fmt.Fprintf(r.writer, "  %s %s\n", severityTag(f.Severity), f.Title)
		fmt.Fprintf(r.writer, "    %s\n", f.Description)
		if f.Evidence != "" {
			fmt.Fprintf(r.writer, "    Evidence: %s\n", f.Evidence)
		}
	}

	s := analysis.Summary
	fmt.Fprintf(r.writer, "\nTotal: %d (high: %d, medium: %d, low: %d, info: %d)\n\n",
		s.Total, s.High, s.Medium, s.Low, s.Info)
}

func severityTag(s analyzer.Severity) string {
	switch s {
	case analyzer.SeverityHigh:
		return color.RedString("[HIGH]")
	case analyzer.SeverityMedium:
		return color.YellowString("[MEDIUM]")
	case analyzer.SeverityLow:
		return color.CyanString("[LOW]")
	default:
		return color.WhiteString("[INFO]")
	}
}

func boolValue(b *bool) bool {
	return b != nil && *b
}

func presence(b *bool) string {
	if boolValue(b) {
		return color.GreenString("present")
	}
	return color.YellowString("not found")
}

func detected(b *bool) string {
	if boolValue(b) {
		return color.GreenString("detected")
	}
	return color.YellowString("not detected")
}

func reachable(b *bool) string {
	if boolValue(b) {
		return color.RedString("reachable")
	}
	return color.GreenString("not reachable")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
