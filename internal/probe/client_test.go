package probe

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func textResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"text/plain"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestNewClient_RejectsBadUserAgent(t *testing.T) {
	if _, err := NewClient(time.Second, ""); err == nil {
		t.Fatalf("expected error for empty user agent")
	}
	if _, err := NewClient(time.Second, "bad\nagent"); err == nil {
		t.Fatalf("expected error for control character in user agent")
	}
	if _, err := NewClient(time.Second, "tenantspectre/0.1.0"); err != nil {
		t.Fatalf("unexpected error for valid user agent: %v", err)
	}
}

func TestClientGet_SetsUserAgentAndReadsBody(t *testing.T) {
	var gotUA string
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		gotUA = req.Header.Get("User-Agent")
		return textResponse(200, "hello"), nil
	})
	client := NewClientWithTransport(rt, "tenantspectre/test")

	outcome := client.Get(context.Background(), "https://example.com/")
	if !outcome.Responded() {
		t.Fatalf("expected a response, got failure %v", outcome.Failure)
	}
	if outcome.StatusCode != 200 {
		t.Fatalf("expected status 200, got %d", outcome.StatusCode)
	}
	if outcome.Body != "hello" {
		t.Fatalf("expected body to be read, got %q", outcome.Body)
	}
	if gotUA != "tenantspectre/test" {
		t.Fatalf("expected user agent header, got %q", gotUA)
	}
}

func TestClientGet_ClassifiesConnectFailure(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return nil, &net.DNSError{Err: "no such host", Name: req.URL.Host, IsNotFound: true}
	})
	client := NewClientWithTransport(rt, "tenantspectre/test")

	outcome := client.Get(context.Background(), "https://nosuch.invalid/")
	if outcome.Responded() {
		t.Fatalf("expected a failure outcome")
	}
	if outcome.Failure != FailureConnect {
		t.Fatalf("expected connect failure, got %v", outcome.Failure)
	}
}

func TestClientGet_ClassifiesTimeout(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return nil, timeoutErr{}
	})
	client := NewClientWithTransport(rt, "tenantspectre/test")

	outcome := client.Get(context.Background(), "https://slow.example.com/")
	if outcome.Failure != FailureTimeout {
		t.Fatalf("expected timeout failure, got %v", outcome.Failure)
	}
}

func TestClientGet_BadURLIsConnectFailure(t *testing.T) {
	client := NewClientWithTransport(roundTripperFunc(func(*http.Request) (*http.Response, error) {
		t.Fatalf("transport should not be reached for an unbuildable request")
		return nil, nil
	}), "tenantspectre/test")

	outcome := client.Get(context.Background(), "http://bad url with spaces/")
	if outcome.Failure != FailureConnect {
		t.Fatalf("expected connect failure for bad URL, got %v", outcome.Failure)
	}
}

func TestClientGet_TruncatesBody(t *testing.T) {
	big := strings.Repeat("x", maxBodyBytes+512)
	rt := roundTripperFunc(func(*http.Request) (*http.Response, error) {
		return textResponse(200, big), nil
	})
	client := NewClientWithTransport(rt, "tenantspectre/test")

	outcome := client.Get(context.Background(), "https://example.com/")
	if len(outcome.Body) != maxBodyBytes {
		t.Fatalf("expected body truncated to %d bytes, got %d", maxBodyBytes, len(outcome.Body))
	}
}
