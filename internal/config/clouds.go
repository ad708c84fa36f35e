package config

import "fmt"

// Cloud selects which Microsoft cloud deployment a scan targets.
type Cloud string

const (
	CloudCommercial Cloud = "commercial"
	CloudGCC        Cloud = "gcc"
	CloudGCCHigh    Cloud = "gcc-high"
	CloudDoD        Cloud = "dod"
	CloudChina      Cloud = "china"
)

// ParseCloud maps a CLI string to a Cloud. An unmapped value is a fatal
// configuration error; no probing starts.
func ParseCloud(s string) (Cloud, error) {
	switch Cloud(s) {
	case CloudCommercial, CloudGCC, CloudGCCHigh, CloudDoD, CloudChina:
		return Cloud(s), nil
	default:
		return "", fmt.Errorf("unknown cloud environment %q (supported: commercial, gcc, gcc-high, dod, china)", s)
	}
}

// CloudProfile is the read-only endpoint table for one cloud deployment.
// URL templates are combined with the target domain by the probe groups;
// the profile itself is never mutated after selection.
type CloudProfile struct {
	Name string

	LoginEndpoint     string // base login URL, e.g. https://login.microsoftonline.com
	LoginHost         string // bare login hostname, used for branding probes
	UserRealmEndpoint string // GetUserRealm federation lookup URL
	OpenIDConfigPath  string // well-known path relative to LoginEndpoint
	SSOCheckURL       string // seamless SSO endpoint; empty when the cloud has none

	SharePointSuffix string // .sharepoint.com and friends
	CDNSuffix        string // empty when the cloud exposes no CDN hostnames
	AppServiceSuffix string
	StorageSuffix    string // blob endpoint suffix; probed under name variants

	EWSHost        string
	ActiveSyncHost string
}

var commercialProfile = CloudProfile{
	Name:              "commercial",
	LoginEndpoint:     "https://login.microsoftonline.com",
	LoginHost:         "login.microsoftonline.com",
	UserRealmEndpoint: "https://login.microsoftonline.com/getuserrealm.srf",
	OpenIDConfigPath:  "common/.well-known/openid-configuration",
	SSOCheckURL:       "https://autologon.microsoftazuread-sso.com/",
	SharePointSuffix:  ".sharepoint.com",
	CDNSuffix:         ".azureedge.net",
	AppServiceSuffix:  ".azurewebsites.net",
	StorageSuffix:     ".blob.core.windows.net",
	EWSHost:           "outlook.office365.com",
	ActiveSyncHost:    "outlook.office365.com",
}

var governmentProfile = CloudProfile{
	Name:              "government",
	LoginEndpoint:     "https://login.microsoftonline.us",
	LoginHost:         "login.microsoftonline.us",
	UserRealmEndpoint: "https://login.microsoftonline.us/getuserrealm.srf",
	OpenIDConfigPath:  "common/.well-known/openid-configuration",
	SSOCheckURL:       "https://autologon.microsoftazuread-sso.us/",
	SharePointSuffix:  ".sharepoint.us",
	CDNSuffix:         ".azureedge.us",
	AppServiceSuffix:  ".azurewebsites.us",
	StorageSuffix:     ".blob.core.usgovcloudapi.net",
	EWSHost:           "outlook.office365.us",
	ActiveSyncHost:    "outlook.office365.us",
}

var chinaProfile = CloudProfile{
	Name:              "china",
	LoginEndpoint:     "https://login.partner.microsoftonline.cn",
	LoginHost:         "login.partner.microsoftonline.cn",
	UserRealmEndpoint: "https://login.partner.microsoftonline.cn/getuserrealm.srf",
	OpenIDConfigPath:  "common/.well-known/openid-configuration",
	SSOCheckURL:       "", // seamless SSO is not offered in the China cloud
	SharePointSuffix:  ".sharepoint.cn",
	CDNSuffix:         ".azureedge.cn",
	AppServiceSuffix:  ".chinacloudsites.cn",
	StorageSuffix:     ".blob.core.chinacloudapi.cn",
	EWSHost:           "partner.outlook.cn",
	ActiveSyncHost:    "partner.outlook.cn",
}

// ProfileFor returns the endpoint table for a cloud. The three US government
// variants share one endpoint set.
func ProfileFor(c Cloud) (CloudProfile, error) {
	switch c {
	case CloudCommercial:
		return commercialProfile, nil
	case CloudGCC, CloudGCCHigh, CloudDoD:
		return governmentProfile, nil
	case CloudChina:
		return chinaProfile, nil
	default:
		return CloudProfile{}, fmt.Errorf("no endpoint profile for cloud %q", c)
	}
}
