// Package recon implements the reconnaissance engine: the DNS, identity and
// service probe groups, and the orchestrator that fans them out and merges
// their results into a single report.
package recon

// Report is the aggregate scan result. Each category pointer is nil when its
// probe group failed to execute at all; fields inside a present category use
// their own optional semantics to mean "probed and determined negative or
// unknown". The two kinds of absence are deliberately distinct and must stay
// that way.
type Report struct {
	Domain              string               `json:"domain"`
	DNSResults          *DNSResults          `json:"dns_results,omitempty"`
	TenantInfo          *TenantInfo          `json:"tenant_info,omitempty"`
	FederationInfo      *FederationInfo      `json:"federation_info,omitempty"`
	AzureADConfig       *AzureADConfig       `json:"azure_ad_config,omitempty"`
	AADConnectStatus    *HybridStatus        `json:"aad_connect_status,omitempty"`
	M365Results         *M365Results         `json:"m365_results,omitempty"`
	AzureServiceResults *AzureServiceResults `json:"azure_service_results,omitempty"`
}

// NewReport returns an empty report carrying the input domain. The domain is
// set exactly once and survives even a run where every probe fails.
func NewReport(domain string) *Report {
	return &Report{Domain: domain}
}

// DNSResults holds mail, federation and collaboration DNS indicators for the
// target domain. Every found flag is consistent with its value field:
// found == true exactly when the value is non-nil.
type DNSResults struct {
	MXRecords      []string `json:"mx_records,omitempty"`
	MXRecordsFound *bool    `json:"mx_records_found,omitempty"`

	SPFRecord      *string `json:"spf_record,omitempty"`
	SPFRecordFound *bool   `json:"spf_record_found,omitempty"`

	DMARCRecord      *string `json:"dmarc_record,omitempty"`
	DMARCRecordFound *bool   `json:"dmarc_record_found,omitempty"`
	DMARCPolicy      *string `json:"dmarc_policy,omitempty"`

	MSTXTRecord *string `json:"ms_txt_record,omitempty"`
	MSTXTFound  *bool   `json:"ms_txt_found,omitempty"`

	EnterpriseRegistrationPresent *bool `json:"enterpriseregistration_present,omitempty"`
	EnterpriseEnrollmentPresent   *bool `json:"enterpriseenrollment_present,omitempty"`

	AutodiscoverCNAMEOrA *string `json:"autodiscover_cname_or_a,omitempty"`
	LyncDiscoverPresent  *bool   `json:"lyncdiscover_present,omitempty"`
	SIPCNAMEOrAPresent   *bool   `json:"sip_cname_or_a_present,omitempty"`
}

// clone returns a copy of the results, or nil for a nil receiver. Later
// probe phases consume DNS output by value so the merged report's category
// stays theirs alone.
func (d *DNSResults) clone() *DNSResults {
	if d == nil {
		return nil
	}
	c := *d
	c.MXRecords = append([]string(nil), d.MXRecords...)
	return &c
}

// TenantInfo is derived after the probe phases from whatever categories
// produced data; it performs no network I/O of its own.
type TenantInfo struct {
	TenantID          *string `json:"tenant_id,omitempty"`
	CloudInstanceName *string `json:"cloud_instance_name,omitempty"`
	LikelyM365Usage   *bool   `json:"likely_m365_usage,omitempty"`
}

// FederationInfo is the parsed GetUserRealm response.
type FederationInfo struct {
	IsFederated         bool    `json:"is_federated"`
	NameSpaceType       *string `json:"NameSpaceType,omitempty"`
	FederationBrandName *string `json:"FederationBrandName,omitempty"`
}

// AzureADConfig carries the subset of the OpenID configuration document the
// report exposes.
type AzureADConfig struct {
	Issuer                *string `json:"issuer,omitempty"`
	AuthorizationEndpoint *string `json:"authorization_endpoint,omitempty"`
	TokenEndpoint         *string `json:"token_endpoint,omitempty"`
	JWKSURI               *string `json:"jwks_uri,omitempty"`
	TenantRegionScope     *string `json:"tenant_region_scope,omitempty"`
}

// HybridStatus is the inferred identity topology of the tenant.
type HybridStatus string

const (
	// StatusHybrid means the seamless SSO endpoint answered: AAD Connect
	// is in play.
	StatusHybrid HybridStatus = "Hybrid"
	// StatusCloudOnly means the SSO hostname is not configured.
	StatusCloudOnly HybridStatus = "CloudOnly"
	// StatusUnknown means the check could not be performed or was
	// inconclusive.
	StatusUnknown HybridStatus = "Unknown"
)

// M365Results holds per-service presence flags for the productivity suite.
type M365Results struct {
	SharePointDetected          *bool `json:"sharepoint_detected,omitempty"`
	TeamsDetected               *bool `json:"teams_detected,omitempty"`
	TenantBrandingAccessible    *bool `json:"tenant_branding_accessible,omitempty"`
	LegacyAuthEWSEnabled        *bool `json:"legacy_auth_ews_enabled,omitempty"`
	LegacyAuthActiveSyncEnabled *bool `json:"legacy_auth_activesync_enabled,omitempty"`
}

// AzureServiceResults lists speculative hosting endpoints that answered.
type AzureServiceResults struct {
	ProbableAppServices     []string `json:"probable_app_services,omitempty"`
	ProbableStorageAccounts []string `json:"probable_storage_accounts,omitempty"`
	ProbableCDNEndpoints    []string `json:"probable_cdn_endpoints,omitempty"`
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }
