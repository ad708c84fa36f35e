package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_NoFile(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.UserAgent != "" {
		t.Fatalf("expected empty user agent, got %q", cfg.UserAgent)
	}
	if cfg.TimeoutDuration() != 0 {
		t.Fatalf("expected zero timeout, got %v", cfg.TimeoutDuration())
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	content := `timeout: 10s
user_agent: assessor-agent/1.0
format: json
dns_server: 1.1.1.1:53
`
	if err := os.WriteFile(filepath.Join(dir, ".tenantspectre.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TimeoutDuration() != 10*time.Second {
		t.Fatalf("expected 10s timeout, got %v", cfg.TimeoutDuration())
	}
	if cfg.UserAgent != "assessor-agent/1.0" {
		t.Fatalf("expected user agent to load, got %q", cfg.UserAgent)
	}
	if cfg.Format != "json" {
		t.Fatalf("expected format json, got %q", cfg.Format)
	}
	if cfg.DNSServer != "1.1.1.1:53" {
		t.Fatalf("expected dns server to load, got %q", cfg.DNSServer)
	}
}

func TestLoad_YMLExtension(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".tenantspectre.yml"), []byte(`format: sarif`), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Format != "sarif" {
		t.Fatalf("expected format sarif, got %q", cfg.Format)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".tenantspectre.yaml"), []byte("timeout: [unclosed"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, err := Load(dir); err == nil {
		t.Fatalf("expected error for malformed config")
	}
}

func TestTimeoutDuration_Unparseable(t *testing.T) {
	cfg := Config{Timeout: "not-a-duration"}
	if cfg.TimeoutDuration() != 0 {
		t.Fatalf("expected zero duration for unparseable timeout")
	}
}

func TestParseCloud(t *testing.T) {
	cases := []struct {
		in      string
		want    Cloud
		wantErr bool
	}{
		{"commercial", CloudCommercial, false},
		{"gcc", CloudGCC, false},
		{"gcc-high", CloudGCCHigh, false},
		{"dod", CloudDoD, false},
		{"china", CloudChina, false},
		{"europe", "", true},
		{"", "", true},
	}

	for _, tt := range cases {
		got, err := ParseCloud(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestProfileFor_GovernmentVariantsShareEndpoints(t *testing.T) {
	gcc, err := ProfileFor(CloudGCC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range []Cloud{CloudGCCHigh, CloudDoD} {
		p, err := ProfileFor(c)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", c, err)
		}
		if p != gcc {
			t.Fatalf("expected %q to share the government profile", c)
		}
	}
	if gcc.LoginEndpoint != "https://login.microsoftonline.us" {
		t.Fatalf("unexpected government login endpoint %q", gcc.LoginEndpoint)
	}
	if gcc.SharePointSuffix != ".sharepoint.us" {
		t.Fatalf("unexpected government sharepoint suffix %q", gcc.SharePointSuffix)
	}
}

func TestProfileFor_Commercial(t *testing.T) {
	p, err := ProfileFor(CloudCommercial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.LoginEndpoint != "https://login.microsoftonline.com" {
		t.Fatalf("unexpected login endpoint %q", p.LoginEndpoint)
	}
	if p.CDNSuffix != ".azureedge.net" {
		t.Fatalf("unexpected cdn suffix %q", p.CDNSuffix)
	}
	if p.SSOCheckURL == "" {
		t.Fatalf("commercial cloud should define an SSO check URL")
	}
}

func TestProfileFor_ChinaHasNoSSOCheck(t *testing.T) {
	p, err := ProfileFor(CloudChina)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.SSOCheckURL != "" {
		t.Fatalf("china cloud should not define an SSO check URL, got %q", p.SSOCheckURL)
	}
	if p.StorageSuffix != ".blob.core.chinacloudapi.cn" {
		t.Fatalf("unexpected china storage suffix %q", p.StorageSuffix)
	}
}
