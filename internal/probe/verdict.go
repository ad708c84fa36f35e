package probe

// Verdict is the tri-state interpretation of one probe outcome. Keeping the
// third state explicit (instead of collapsing to a bool at the probe site)
// lets tests pin the interpretation policy directly.
type Verdict int

const (
	Unknown Verdict = iota
	Present
	Absent
)

func (v Verdict) String() string {
	switch v {
	case Present:
		return "present"
	case Absent:
		return "absent"
	default:
		return "unknown"
	}
}

// Kind selects the status-code policy for a probe target. The per-service
// rules differ deliberately: a 404 from a speculative App Service hostname
// still proves the hostname is claimed, while a 404 from SharePoint proves
// nothing.
type Kind int

const (
	// KindWeb treats only 2xx/3xx as presence (SharePoint, branding-style
	// front ends that redirect unauthenticated callers).
	KindWeb Kind = iota
	// KindStorage treats 2xx and any 4xx as presence: a storage account
	// answers 400/404 on container access when the name is taken. A 3xx is
	// not presence; storage endpoints do not redirect, so one coming back
	// means an interception layer answered, not the account.
	KindStorage
	// KindLegacyAuth additionally treats any 4xx as presence: 401/403
	// confirm the endpoint exists behind authentication.
	KindLegacyAuth
	// KindEndpoint treats any received response as presence: the
	// speculative hostname resolved and something answered (App Service,
	// CDN).
	KindEndpoint
)

// Evaluate maps a raw network outcome to a verdict for the given probe kind.
//
// The rules encode hard-won domain knowledge and are intentionally not
// unified across kinds:
//   - 2xx is presence for every kind.
//   - 3xx is presence for every kind except storage, where a redirect says
//     nothing about the account name.
//   - 4xx is presence for storage and legacy-auth probes only.
//   - Any response at all is presence for endpoint probes.
//   - A connect-level failure means the hostname is not in use: Absent.
//   - Timeouts and unclassified transport errors are never promoted to
//     Present or Absent.
func Evaluate(o Outcome, k Kind) Verdict {
	if !o.Responded() {
		switch o.Failure {
		case FailureConnect:
			return Absent
		default:
			return Unknown
		}
	}

	if k == KindEndpoint {
		return Present
	}

	switch {
	case o.StatusCode >= 200 && o.StatusCode < 300:
		return Present
	case o.StatusCode >= 300 && o.StatusCode < 400:
		if k == KindStorage {
			return Unknown
		}
		return Present
	case o.StatusCode >= 400 && o.StatusCode < 500:
		if k == KindStorage || k == KindLegacyAuth {
			return Present
		}
		return Absent
	default:
		return Absent
	}
}
