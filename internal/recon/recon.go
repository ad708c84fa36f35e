package recon

import (
	"context"
	"regexp"
	"strings"

	"github.com/ppiankov/tenantspectre/internal/config"
	"github.com/ppiankov/tenantspectre/internal/probe"
)

// Category names used for observer callbacks and logs.
const (
	CategoryDNS           = "dns"
	CategoryFederation    = "federation_info"
	CategoryAzureAD       = "azure_ad_config"
	CategoryHybridStatus  = "aad_connect_status"
	CategoryM365          = "m365_results"
	CategoryAzureServices = "azure_service_results"
)

// Observer receives one callback per probe group as the orchestrator merges
// results. The concrete logging backend lives with the caller; the engine
// itself never assumes one.
type Observer interface {
	GroupCompleted(category string, err error)
}

type noopObserver struct{}

func (noopObserver) GroupCompleted(string, error) {}

// Runner wires the shared probe client, resolver and endpoint profile into
// one scan execution. All fields are read-only once constructed; per-task
// state lives on the goroutine stacks.
type Runner struct {
	client   *probe.Client
	resolver Resolver
	profile  config.CloudProfile
	observer Observer
}

// NewRunner builds a Runner. A nil observer is replaced with a no-op.
func NewRunner(client *probe.Client, resolver Resolver, profile config.CloudProfile, observer Observer) *Runner {
	if observer == nil {
		observer = noopObserver{}
	}
	return &Runner{
		client:   client,
		resolver: resolver,
		profile:  profile,
		observer: observer,
	}
}

// Run executes the full scan and always returns a merged report. Phase one
// runs the DNS group to completion because later probes consume its output;
// phase two fans out the identity probes and both service groups
// concurrently. A category that errors or panics is logged via the observer
// and left absent in the report; nothing short of a caller-cancelled context
// stops the remaining categories from being merged.
func (r *Runner) Run(ctx context.Context, domain string) *Report {
	report := NewReport(domain)

	// Phase 1: DNS. Sequential gate; phase 2 reads its output by value.
	dnsErrs := probe.RunAll(ctx, func(ctx context.Context) error {
		res, err := RunDNSGroup(ctx, r.resolver, domain)
		if err != nil {
			return err
		}
		report.DNSResults = res
		return nil
	})
	r.observer.GroupCompleted(CategoryDNS, dnsErrs[0])
	if dnsErrs[0] != nil {
		report.DNSResults = nil
	}
	dnsCopy := report.DNSResults.clone()

	// Phase 2: identity probes and service groups, all concurrent. Each
	// closure writes only its own category; merge order is fixed by the
	// slot order below.
	var (
		fedInfo   *FederationInfo
		aadConfig *AzureADConfig
		hybrid    HybridStatus
		m365      *M365Results
		azureSvc  *AzureServiceResults
	)

	errs := probe.RunAll(ctx,
		func(ctx context.Context) error {
			res, err := FetchFederationInfo(ctx, r.client, domain, r.profile)
			if err != nil {
				return err
			}
			fedInfo = res
			return nil
		},
		func(ctx context.Context) error {
			res, err := FetchAzureADConfig(ctx, r.client, domain, r.profile)
			if err != nil {
				return err
			}
			aadConfig = res
			return nil
		},
		func(ctx context.Context) error {
			res, err := CheckHybridStatus(ctx, r.client, domain, r.profile)
			if err != nil {
				return err
			}
			hybrid = res
			return nil
		},
		func(ctx context.Context) error {
			res, err := RunM365Group(ctx, r.client, domain, r.profile, dnsCopy)
			if err != nil {
				return err
			}
			m365 = res
			return nil
		},
		func(ctx context.Context) error {
			res, err := RunAzureServiceGroup(ctx, r.client, domain, r.profile)
			if err != nil {
				return err
			}
			azureSvc = res
			return nil
		},
	)

	categories := []string{
		CategoryFederation,
		CategoryAzureAD,
		CategoryHybridStatus,
		CategoryM365,
		CategoryAzureServices,
	}
	for i, name := range categories {
		r.observer.GroupCompleted(name, errs[i])
	}

	if errs[0] == nil {
		report.FederationInfo = fedInfo
	}
	if errs[1] == nil {
		report.AzureADConfig = aadConfig
	}
	if errs[2] == nil {
		report.AADConnectStatus = &hybrid
	}
	if errs[3] == nil {
		report.M365Results = m365
	}
	if errs[4] == nil {
		report.AzureServiceResults = azureSvc
	}

	report.TenantInfo = deriveTenantInfo(report, r.profile)

	return report
}

// issuerTenantID matches the directory GUID embedded in OpenID issuer URLs
// such as https://sts.windows.net/31537af4-.../.
var issuerTenantID = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)

// deriveTenantInfo assembles the tenant-identity category from whatever the
// probe categories produced. Pure derivation, no network I/O; nil when no
// source category yielded a signal.
func deriveTenantInfo(report *Report, p config.CloudProfile) *TenantInfo {
	info := &TenantInfo{}
	populated := false

	if report.AzureADConfig != nil && report.AzureADConfig.Issuer != nil {
		if id := issuerTenantID.FindString(*report.AzureADConfig.Issuer); id != "" {
			info.TenantID = strPtr(strings.ToLower(id))
			populated = true
		}
	}

	if report.FederationInfo != nil || report.AzureADConfig != nil {
		info.CloudInstanceName = strPtr(p.LoginHost)
		populated = true
	}

	if likely, ok := likelyM365Usage(report); ok {
		info.LikelyM365Usage = boolPtr(likely)
		populated = true
	}

	if !populated {
		return nil
	}
	return info
}

// likelyM365Usage folds the strongest platform signals into one flag. The
// second return is false when no source category is present to judge from.
func likelyM365Usage(report *Report) (bool, bool) {
	hasSource := false
	likely := false

	if dns := report.DNSResults; dns != nil {
		hasSource = true
		for _, mx := range dns.MXRecords {
			if strings.Contains(strings.ToLower(mx), "protection.outlook.com") {
				likely = true
			}
		}
		if dns.AutodiscoverCNAMEOrA != nil {
			likely = true
		}
		if dns.MSTXTFound != nil && *dns.MSTXTFound {
			likely = true
		}
	}
	if m := report.M365Results; m != nil {
		hasSource = true
		if m.SharePointDetected != nil && *m.SharePointDetected {
			likely = true
		}
	}

	return likely, hasSource
}
