package recon

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ppiankov/tenantspectre/internal/probe"
)

// RunDNSGroup issues all DNS probes for the domain concurrently and
// assembles the indicator record. A failed or empty lookup is a firm
// negative for that record type only; it never aborts the group and never
// yields an Unknown, because a single-attempt resolver failure and a missing
// record are indistinguishable without retries, which are out of scope.
func RunDNSGroup(ctx context.Context, r Resolver, domain string) (*DNSResults, error) {
	results := &DNSResults{}

	var (
		mxRecords     []string
		txtRecords    []string
		autodiscover  string
		lyncPresent   bool
		sipPresent    bool
		entRegPresent bool
		entEnrPresent bool
	)

	probe.RunAll(ctx,
		func(ctx context.Context) error {
			recs, err := r.LookupMX(ctx, domain)
			if err != nil {
				slog.Debug("MX lookup failed", "domain", domain, "error", err)
				return nil
			}
			mxRecords = recs
			return nil
		},
		func(ctx context.Context) error {
			recs, err := r.LookupTXT(ctx, domain)
			if err != nil {
				slog.Debug("TXT lookup failed", "domain", domain, "error", err)
				return nil
			}
			txtRecords = recs
			return nil
		},
		func(ctx context.Context) error {
			autodiscover = lookupCNAMEOrA(ctx, r, "autodiscover."+domain)
			return nil
		},
		func(ctx context.Context) error {
			lyncPresent = recordPresent(ctx, r, "lyncdiscover."+domain)
			return nil
		},
		func(ctx context.Context) error {
			sipPresent = recordPresent(ctx, r, "sip."+domain)
			return nil
		},
		func(ctx context.Context) error {
			entRegPresent = recordPresent(ctx, r, "enterpriseregistration."+domain)
			return nil
		},
		func(ctx context.Context) error {
			entEnrPresent = recordPresent(ctx, r, "enterpriseenrollment."+domain)
			return nil
		},
	)

	results.MXRecords = mxRecords
	results.MXRecordsFound = boolPtr(len(mxRecords) > 0)

	setTXTDerived(results, txtRecords)

	if autodiscover != "" {
		results.AutodiscoverCNAMEOrA = strPtr(autodiscover)
	}
	results.LyncDiscoverPresent = boolPtr(lyncPresent)
	results.SIPCNAMEOrAPresent = boolPtr(sipPresent)
	results.EnterpriseRegistrationPresent = boolPtr(entRegPresent)
	results.EnterpriseEnrollmentPresent = boolPtr(entEnrPresent)

	return results, nil
}

// setTXTDerived extracts the SPF, DMARC and Microsoft verification records
// from the raw TXT answer set, keeping every found flag consistent with its
// value field.
func setTXTDerived(results *DNSResults, txtRecords []string) {
	if spf := findByPrefix(txtRecords, "v=spf1"); spf != "" {
		results.SPFRecord = strPtr(spf)
	}
	results.SPFRecordFound = boolPtr(results.SPFRecord != nil)

	if dmarc := findByPrefix(txtRecords, "v=dmarc1"); dmarc != "" {
		results.DMARCRecord = strPtr(dmarc)
		if policy := extractDMARCPolicy(dmarc); policy != "" {
			results.DMARCPolicy = strPtr(policy)
		}
	}
	results.DMARCRecordFound = boolPtr(results.DMARCRecord != nil)

	if ms := findByPrefix(txtRecords, "ms="); ms != "" {
		results.MSTXTRecord = strPtr(ms)
	}
	results.MSTXTFound = boolPtr(results.MSTXTRecord != nil)
}

// findByPrefix returns the first record whose lowercased text starts with
// prefix, or "".
func findByPrefix(records []string, prefix string) string {
	for _, rec := range records {
		if strings.HasPrefix(strings.ToLower(rec), prefix) {
			return rec
		}
	}
	return ""
}

// extractDMARCPolicy pulls the p= value out of a DMARC record. Returns ""
// when the record carries no policy segment.
func extractDMARCPolicy(record string) string {
	for _, part := range strings.Split(record, ";") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(strings.ToLower(part), "p=") {
			return part[2:]
		}
	}
	return ""
}

// lookupCNAMEOrA resolves host to its CNAME target, falling back to the
// first A/AAAA address. Returns "" when neither exists.
func lookupCNAMEOrA(ctx context.Context, r Resolver, host string) string {
	if cname, err := r.LookupCNAME(ctx, host); err == nil && cname != "" {
		return cname
	}
	if ips, err := r.LookupHost(ctx, host); err == nil && len(ips) > 0 {
		return ips[0]
	}
	return ""
}

// recordPresent reports whether host has any A/AAAA or CNAME record.
func recordPresent(ctx context.Context, r Resolver, host string) bool {
	if ips, err := r.LookupHost(ctx, host); err == nil && len(ips) > 0 {
		return true
	}
	if cname, err := r.LookupCNAME(ctx, host); err == nil && cname != "" {
		return true
	}
	return false
}
