// Package analyzer derives security findings from a completed scan report.
// It is a pure function of the report: no network access, no state.
package analyzer

import (
	"fmt"
	"strings"

	"github.com/ppiankov/tenantspectre/internal/recon"
)

// Analyze walks the report categories and emits a finding for each weak or
// exposure-relevant posture signal. A category that is absent from the report
// produces no findings; absence of data is never treated as absence of a
// control.
func Analyze(report *recon.Report) *Result {
	result := &Result{}

	analyzeDNS(report.DNSResults, result)
	analyzeM365(report.M365Results, result)
	analyzeIdentity(report, result)
	analyzeAzureServices(report.AzureServiceResults, result)

	for _, f := range result.Findings {
		result.Summary.Total++
		switch f.Severity {
		case SeverityHigh:
			result.Summary.High++
		case SeverityMedium:
			result.Summary.Medium++
		case SeverityLow:
			result.Summary.Low++
		case SeverityInfo:
			result.Summary.Info++
		}
	}

	return result
}

func analyzeDNS(dns *recon.DNSResults, result *Result) {
	if dns == nil {
		return
	}

	if dns.SPFRecordFound != nil && !*dns.SPFRecordFound {
		result.add(Finding{
			RuleID:      RuleSPFMissing,
			Severity:    SeverityMedium,
			Title:       "No SPF record",
			Description: "The domain publishes no SPF record, so receivers cannot verify sending hosts and the domain is easier to spoof.",
		})
	}

	if dns.DMARCRecordFound != nil && !*dns.DMARCRecordFound {
		result.add(Finding{
			RuleID:      RuleDMARCMissing,
			Severity:    SeverityMedium,
			Title:       "No DMARC record",
			Description: "The domain publishes no DMARC record; spoofed mail from it will not be rejected or quarantined.",
		})
	} else if dns.DMARCPolicy != nil {
		policy := strings.ToLower(*dns.DMARCPolicy)
		if policy == "none" {
			result.add(Finding{
				RuleID:      RuleDMARCWeakPolicy,
				Severity:    SeverityLow,
				Title:       "DMARC policy is p=none",
				Description: "A monitoring-only DMARC policy reports spoofing but does not stop it.",
				Evidence:    deref(dns.DMARCRecord),
			})
		}
	}

	enrollment := dns.EnterpriseEnrollmentPresent != nil && *dns.EnterpriseEnrollmentPresent
	registration := dns.EnterpriseRegistrationPresent != nil && *dns.EnterpriseRegistrationPresent
	if enrollment || registration {
		result.add(Finding{
			RuleID:      RuleDeviceEnrollment,
			Severity:    SeverityInfo,
			Title:       "Device enrollment DNS records present",
			Description: "enterpriseregistration/enterpriseenrollment records confirm Intune or AAD device join is in use for this domain.",
		})
	}
}

func analyzeM365(m365 *recon.M365Results, result *Result) {
	if m365 == nil {
		return
	}

	if m365.LegacyAuthEWSEnabled != nil && *m365.LegacyAuthEWSEnabled {
		result.add(Finding{
			RuleID:      RuleLegacyAuthEWS,
			Severity:    SeverityHigh,
			Title:       "EWS endpoint reachable",
			Description: "Exchange Web Services answers for this tenant. Legacy protocols bypass modern auth controls and are a common password-spray surface.",
		})
	}

	if m365.LegacyAuthActiveSyncEnabled != nil && *m365.LegacyAuthActiveSyncEnabled {
		result.add(Finding{
			RuleID:      RuleLegacyAuthEAS,
			Severity:    SeverityHigh,
			Title:       "ActiveSync endpoint reachable",
			Description: "Microsoft-Server-ActiveSync answers for this tenant and is a common target for credential stuffing.",
		})
	}

	if m365.TenantBrandingAccessible != nil && *m365.TenantBrandingAccessible {
		result.add(Finding{
			RuleID:      RuleBrandingExposed,
			Severity:    SeverityLow,
			Title:       "Tenant branding publicly accessible",
			Description: "Custom sign-in branding is retrievable without authentication and can be cloned for phishing pages.",
		})
	}
}

func analyzeIdentity(report *recon.Report, result *Result) {
	if report.AADConnectStatus != nil && *report.AADConnectStatus == recon.StatusHybrid {
		result.add(Finding{
			RuleID:      RuleSeamlessSSO,
			Severity:    SeverityMedium,
			Title:       "Seamless SSO endpoint exposed",
			Description: "The autologon endpoint answers for this tenant. Seamless SSO enables username enumeration via timing and error responses.",
		})
	}

	if fed := report.FederationInfo; fed != nil && fed.IsFederated {
		f := Finding{
			RuleID:      RuleFederatedNamespace,
			Severity:    SeverityInfo,
			Title:       "Federated namespace",
			Description: "Authentication is delegated to an on-premises identity provider; its hostname is discoverable and extends the attack surface.",
		}
		if fed.FederationBrandName != nil {
			f.Evidence = *fed.FederationBrandName
		}
		result.add(f)
	}
}

func analyzeAzureServices(svc *recon.AzureServiceResults, result *Result) {
	if svc == nil {
		return
	}

	if len(svc.ProbableStorageAccounts) > 0 {
		result.add(Finding{
			RuleID:      RuleStorageExposed,
			Severity:    SeverityMedium,
			Title:       "Storage account name guessable from domain",
			Description: fmt.Sprintf("%d storage account(s) derived from the tenant label answered. Predictable names invite container enumeration.", len(svc.ProbableStorageAccounts)),
			Evidence:    strings.Join(svc.ProbableStorageAccounts, ", "),
		})
	}
}

func (r *Result) add(f Finding) {
	r.Findings = append(r.Findings, f)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
