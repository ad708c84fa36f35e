package analyzer

// Severity ranks how urgent a finding is
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
	SeverityInfo   Severity = "INFO"
)

// Finding is one security-relevant observation derived from the scan
type Finding struct {
	RuleID      string   `json:"rule_id"`
	Severity    Severity `json:"severity"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Evidence    string   `json:"evidence,omitempty"`
}

// Summary contains high-level finding counts
type Summary struct {
	Total  int `json:"total"`
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
	Info   int `json:"info"`
}

// Result contains the complete analysis result
type Result struct {
	Summary  Summary   `json:"summary"`
	Findings []Finding `json:"findings,omitempty"`
}

// Rule identifiers, stable across releases so downstream tooling can key on
// them.
const (
	RuleSPFMissing         = "SPF_MISSING"
	RuleDMARCMissing       = "DMARC_MISSING"
	RuleDMARCWeakPolicy    = "DMARC_WEAK_POLICY"
	RuleLegacyAuthEWS      = "LEGACY_AUTH_EWS"
	RuleLegacyAuthEAS      = "LEGACY_AUTH_ACTIVESYNC"
	RuleSeamlessSSO        = "SEAMLESS_SSO_EXPOSED"
	RuleFederatedNamespace = "FEDERATED_NAMESPACE"
	RuleStorageExposed     = "STORAGE_ACCOUNT_GUESSABLE"
	RuleBrandingExposed    = "TENANT_BRANDING_EXPOSED"
	RuleDeviceEnrollment   = "DEVICE_ENROLLMENT_DNS"
)
