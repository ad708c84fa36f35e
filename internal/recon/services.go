package recon

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ppiankov/tenantspectre/internal/config"
	"github.com/ppiankov/tenantspectre/internal/probe"
)

// tenantLabel is the first dot-separated label of the domain; speculative
// hostnames are built from it ("contoso" for contoso.com).
func tenantLabel(domain string) string {
	if i := strings.IndexByte(domain, '.'); i > 0 {
		return domain[:i]
	}
	return domain
}

// RunM365Group probes the productivity-suite services concurrently. The DNS
// results are passed by value from the completed DNS phase; the Teams check
// reads them and performs no network I/O of its own. Ambiguous outcomes
// collapse to "not detected" here: that is a named policy choice (see
// probe.Evaluate), not an accident.
func RunM365Group(ctx context.Context, c *probe.Client, domain string, p config.CloudProfile, dns *DNSResults) (*M365Results, error) {
	results := &M365Results{}
	label := tenantLabel(domain)

	var (
		sharepoint bool
		branding   bool
		ews        bool
		activesync bool
	)

	probe.RunAll(ctx,
		func(ctx context.Context) error {
			u := fmt.Sprintf("https://%s%s", label, p.SharePointSuffix)
			slog.Debug("Checking SharePoint", "domain", domain, "url", u)
			sharepoint = probe.Evaluate(c.Get(ctx, u), probe.KindWeb) == probe.Present
			return nil
		},
		func(ctx context.Context) error {
			u := fmt.Sprintf("https://%s/%s/common/branding/favicon.ico", p.LoginHost, label)
			slog.Debug("Checking tenant branding", "domain", domain, "url", u)
			outcome := c.Get(ctx, u)
			branding = outcome.Responded() && outcome.StatusCode >= 200 && outcome.StatusCode < 300
			return nil
		},
		func(ctx context.Context) error {
			u := fmt.Sprintf("https://%s/EWS/Exchange.asmx", p.EWSHost)
			slog.Debug("Checking legacy auth (EWS)", "domain", domain, "url", u)
			ews = probe.Evaluate(c.Get(ctx, u), probe.KindLegacyAuth) == probe.Present
			return nil
		},
		func(ctx context.Context) error {
			u := fmt.Sprintf("https://%s/Microsoft-Server-ActiveSync", p.ActiveSyncHost)
			slog.Debug("Checking legacy auth (ActiveSync)", "domain", domain, "url", u)
			activesync = probe.Evaluate(c.Get(ctx, u), probe.KindLegacyAuth) == probe.Present
			return nil
		},
	)

	results.SharePointDetected = boolPtr(sharepoint)
	results.TeamsDetected = boolPtr(teamsDetected(dns))
	results.TenantBrandingAccessible = boolPtr(branding)
	results.LegacyAuthEWSEnabled = boolPtr(ews)
	results.LegacyAuthActiveSyncEnabled = boolPtr(activesync)

	return results, nil
}

// teamsDetected derives collaboration presence purely from DNS indicators.
func teamsDetected(dns *DNSResults) bool {
	if dns == nil {
		return false
	}
	lync := dns.LyncDiscoverPresent != nil && *dns.LyncDiscoverPresent
	sip := dns.SIPCNAMEOrAPresent != nil && *dns.SIPCNAMEOrAPresent
	return lync || sip
}

// RunAzureServiceGroup probes speculative hosting hostnames concurrently.
func RunAzureServiceGroup(ctx context.Context, c *probe.Client, domain string, p config.CloudProfile) (*AzureServiceResults, error) {
	results := &AzureServiceResults{}
	label := tenantLabel(domain)

	var (
		appServiceURL string
		storageURL    string
		cdnURL        string
	)

	probe.RunAll(ctx,
		func(ctx context.Context) error {
			u := fmt.Sprintf("https://%s%s", label, p.AppServiceSuffix)
			slog.Debug("Checking App Service", "domain", domain, "url", u)
			if probe.Evaluate(c.Get(ctx, u), probe.KindEndpoint) == probe.Present {
				appServiceURL = u
			}
			return nil
		},
		func(ctx context.Context) error {
			storageURL = probeStorageAccounts(ctx, c, label, p)
			return nil
		},
		func(ctx context.Context) error {
			if p.CDNSuffix == "" {
				slog.Debug("CDN check skipped, no suffix for this cloud", "domain", domain)
				return nil
			}
			u := fmt.Sprintf("https://%s%s", label, p.CDNSuffix)
			slog.Debug("Checking CDN endpoint", "domain", domain, "url", u)
			if probe.Evaluate(c.Get(ctx, u), probe.KindEndpoint) == probe.Present {
				cdnURL = u
			}
			return nil
		},
	)

	if appServiceURL != "" {
		results.ProbableAppServices = []string{appServiceURL}
	}
	if storageURL != "" {
		results.ProbableStorageAccounts = []string{storageURL}
	}
	if cdnURL != "" {
		results.ProbableCDNEndpoints = []string{cdnURL}
	}

	return results, nil
}

// storageCandidates returns the account-name variants tried for a tenant
// label, in their fixed probe order.
func storageCandidates(label string) []string {
	return []string{label, label + "storage", label + "data"}
}

// probeStorageAccounts walks the candidate names in order and stops at the
// first one whose response is a success or client error: a taken account
// name answers 400 on bare container access, so any 4xx is as diagnostic as
// a 200. Redirects, connect failures and timeouts do not resolve the walk
// and fall through to the next candidate; once one candidate resolves, the
// rest are never probed.
func probeStorageAccounts(ctx context.Context, c *probe.Client, label string, p config.CloudProfile) string {
	for _, name := range storageCandidates(label) {
		u := fmt.Sprintf("https://%s%s", name, p.StorageSuffix)
		slog.Debug("Checking storage account", "candidate", name, "url", u)
		if probe.Evaluate(c.Get(ctx, u), probe.KindStorage) == probe.Present {
			return u
		}
	}
	return ""
}
