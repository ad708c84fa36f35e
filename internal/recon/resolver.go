package recon

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/miekg/dns"
)

// Resolver is the lookup surface the DNS probe group needs. The production
// implementation queries a public resolver over miekg/dns; tests substitute
// a deterministic fake.
type Resolver interface {
	LookupMX(ctx context.Context, domain string) ([]string, error)
	LookupTXT(ctx context.Context, domain string) ([]string, error)
	LookupCNAME(ctx context.Context, host string) (string, error)
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// dnsResolver issues one query per lookup against a fixed server. The
// embedded client carries its own timeout; the resolver is never mutated
// after construction and is safe for concurrent use.
type dnsResolver struct {
	client *dns.Client
	server string
}

// NewResolver builds a Resolver querying server (host:port).
func NewResolver(server string, timeout time.Duration) Resolver {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &dnsResolver{
		client: &dns.Client{Timeout: timeout},
		server: server,
	}
}

func (r *dnsResolver) exchange(ctx context.Context, name string, qtype uint16) (*dns.Msg, error) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(name), qtype)
	in, _, err := r.client.ExchangeContext(ctx, m, r.server)
	if err != nil {
		return nil, err
	}
	if in == nil {
		return nil, fmt.Errorf("empty response from %s", r.server)
	}
	return in, nil
}

func (r *dnsResolver) LookupMX(ctx context.Context, domain string) ([]string, error) {
	in, err := r.exchange(ctx, domain, dns.TypeMX)
	if err != nil {
		return nil, err
	}
	var hosts []string
	for _, ans := range in.Answer {
		if mx, ok := ans.(*dns.MX); ok {
			hosts = append(hosts, strings.TrimSuffix(mx.Mx, "."))
		}
	}
	return hosts, nil
}

func (r *dnsResolver) LookupTXT(ctx context.Context, domain string) ([]string, error) {
	in, err := r.exchange(ctx, domain, dns.TypeTXT)
	if err != nil {
		return nil, err
	}
	var records []string
	for _, ans := range in.Answer {
		if txt, ok := ans.(*dns.TXT); ok {
			// Multi-string TXT answers are one logical record.
			records = append(records, strings.Join(txt.Txt, ""))
		}
	}
	return records, nil
}

func (r *dnsResolver) LookupCNAME(ctx context.Context, host string) (string, error) {
	in, err := r.exchange(ctx, host, dns.TypeCNAME)
	if err != nil {
		return "", err
	}
	for _, ans := range in.Answer {
		if cname, ok := ans.(*dns.CNAME); ok {
			return strings.TrimSuffix(cname.Target, "."), nil
		}
	}
	return "", nil
}

func (r *dnsResolver) LookupHost(ctx context.Context, host string) ([]string, error) {
	var ips []string

	in, err := r.exchange(ctx, host, dns.TypeA)
	if err == nil {
		for _, ans := range in.Answer {
			if a, ok := ans.(*dns.A); ok {
				ips = append(ips, a.A.String())
			}
		}
	}

	in6, err6 := r.exchange(ctx, host, dns.TypeAAAA)
	if err6 == nil {
		for _, ans := range in6.Answer {
			if aaaa, ok := ans.(*dns.AAAA); ok {
				ips = append(ips, aaaa.AAAA.String())
			}
		}
	}

	if len(ips) == 0 && err != nil {
		return nil, err
	}
	return ips, nil
}
