package recon

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/ppiankov/tenantspectre/internal/config"
	"github.com/ppiankov/tenantspectre/internal/probe"
)

// FetchFederationInfo queries the GetUserRealm endpoint with a synthetic
// user and parses the namespace and brand out of the XML body. A non-2xx
// response is a hard probe failure: no federation verdict can be inferred
// from an error page, so the category is reported absent rather than guessed.
func FetchFederationInfo(ctx context.Context, c *probe.Client, domain string, p config.CloudProfile) (*FederationInfo, error) {
	realmURL := fmt.Sprintf("%s?login=recon@%s&xml=1", p.UserRealmEndpoint, url.QueryEscape(domain))
	slog.Debug("Querying GetUserRealm", "domain", domain, "url", realmURL)

	outcome := c.Get(ctx, realmURL)
	if !outcome.Responded() {
		return nil, fmt.Errorf("GetUserRealm request failed: %w", outcome.Err)
	}
	if outcome.StatusCode < 200 || outcome.StatusCode >= 300 {
		return nil, fmt.Errorf("GetUserRealm returned status %d", outcome.StatusCode)
	}

	info := &FederationInfo{}
	nsType, ok := getTag(outcome.Body, "NameSpaceType")
	if !ok {
		nsType = "Unknown"
	}
	info.NameSpaceType = strPtr(nsType)
	info.IsFederated = strings.EqualFold(nsType, "Federated")

	if brand, ok := getTag(outcome.Body, "FederationBrandName"); ok {
		info.FederationBrandName = strPtr(brand)
	}

	return info, nil
}

// getTag extracts the text between <name> and </name> by literal substring
// search. The realm endpoint emits flat, attribute-free XML, and a missing
// tag must read as an absent value, never an error, so a tolerant scan beats
// a full parser here.
func getTag(body, name string) (string, bool) {
	open := "<" + name + ">"
	closing := "</" + name + ">"

	start := strings.Index(body, open)
	if start < 0 {
		return "", false
	}
	rest := body[start+len(open):]
	end := strings.Index(rest, closing)
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

// openIDDocument mirrors the fields the report keeps from the discovery
// document; everything else in the body is ignored.
type openIDDocument struct {
	Issuer                string `json:"issuer"`
	AuthorizationEndpoint string `json:"authorization_endpoint"`
	TokenEndpoint         string `json:"token_endpoint"`
	JWKSURI               string `json:"jwks_uri"`
	TenantRegionScope     string `json:"tenant_region_scope"`
}

// FetchAzureADConfig retrieves the OpenID configuration document from the
// cloud's login endpoint. Non-2xx is a hard probe failure.
func FetchAzureADConfig(ctx context.Context, c *probe.Client, domain string, p config.CloudProfile) (*AzureADConfig, error) {
	base, err := url.Parse(p.LoginEndpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid login endpoint: %w", err)
	}
	configURL := base.JoinPath(p.OpenIDConfigPath).String()
	slog.Debug("Querying OpenID configuration", "domain", domain, "url", configURL)

	outcome := c.Get(ctx, configURL)
	if !outcome.Responded() {
		return nil, fmt.Errorf("OpenID configuration request failed: %w", outcome.Err)
	}
	if outcome.StatusCode < 200 || outcome.StatusCode >= 300 {
		return nil, fmt.Errorf("OpenID configuration returned status %d", outcome.StatusCode)
	}

	var doc openIDDocument
	if err := json.Unmarshal([]byte(outcome.Body), &doc); err != nil {
		return nil, fmt.Errorf("parse OpenID configuration: %w", err)
	}

	cfg := &AzureADConfig{}
	if doc.Issuer != "" {
		cfg.Issuer = strPtr(doc.Issuer)
	}
	if doc.AuthorizationEndpoint != "" {
		cfg.AuthorizationEndpoint = strPtr(doc.AuthorizationEndpoint)
	}
	if doc.TokenEndpoint != "" {
		cfg.TokenEndpoint = strPtr(doc.TokenEndpoint)
	}
	if doc.JWKSURI != "" {
		cfg.JWKSURI = strPtr(doc.JWKSURI)
	}
	if doc.TenantRegionScope != "" {
		cfg.TenantRegionScope = strPtr(doc.TenantRegionScope)
	}
	return cfg, nil
}

// CheckHybridStatus probes the seamless SSO endpoint to infer whether the
// tenant runs hybrid identity. The endpoint answering at all (2xx/3xx) means
// AAD Connect seamless SSO is configured; the hostname not existing means it
// is not. Only genuinely ambiguous transport faults stay Unknown.
func CheckHybridStatus(ctx context.Context, c *probe.Client, domain string, p config.CloudProfile) (HybridStatus, error) {
	if p.SSOCheckURL == "" {
		slog.Debug("No SSO check URL for this cloud, hybrid status unknown", "domain", domain)
		return StatusUnknown, nil
	}

	outcome := c.Get(ctx, p.SSOCheckURL)
	if outcome.Responded() {
		if outcome.StatusCode >= 200 && outcome.StatusCode < 400 {
			return StatusHybrid, nil
		}
		return StatusCloudOnly, nil
	}

	switch outcome.Failure {
	case probe.FailureConnect, probe.FailureTimeout:
		return StatusCloudOnly, nil
	default:
		return StatusUnknown, nil
	}
}
