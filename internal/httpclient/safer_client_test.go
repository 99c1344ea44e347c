package httpclient

import (
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func boolPtr(b bool) *bool { return &b }

func TestNewSaferClient_Defaults(t *testing.T) {
	client := NewSaferClient(30*time.Second, SaferClientOptions{})

	if client.Timeout != 30*time.Second {
		t.Errorf("Expected timeout 30s, got %v", client.Timeout)
	}
	if client.maxRedirects != 10 {
		t.Errorf("Expected maxRedirects 10, got %d", client.maxRedirects)
	}
	if !client.blockPrivateIP {
		t.Error("Expected blockPrivateIP to be true")
	}
}

func TestSaferClientOptions(t *testing.T) {
	maxRedirects := 5
	client := NewSaferClient(30*time.Second, SaferClientOptions{
		AllowedSchemes: []string{"https"},
		MaxRedirects:   &maxRedirects,
		BlockPrivateIP: boolPtr(false),
	})

	if len(client.allowedSchemes) != 1 || client.allowedSchemes[0] != "https" {
		t.Errorf("Expected allowedSchemes [https], got %v", client.allowedSchemes)
	}
	if client.maxRedirects != 5 {
		t.Errorf("Expected maxRedirects 5, got %d", client.maxRedirects)
	}
	if client.blockPrivateIP {
		t.Error("Expected blockPrivateIP to be false")
	}

	if _, err := client.ValidateURL("http://www.wikidata.org/w/api.php"); err == nil {
		t.Error("Expected HTTP to be blocked with HTTPS-only config")
	}
}

func TestValidateURL(t *testing.T) {
	blocking := NewSaferClient(30*time.Second, SaferClientOptions{})
	permissive := NewSaferClient(30*time.Second, SaferClientOptions{BlockPrivateIP: boolPtr(false)})

	tests := []struct {
		name        string
		client      *SaferClient
		url         string
		errContains string
	}{
		{"wikidata endpoint", blocking, "https://www.wikidata.org/w/api.php", ""},
		{"file scheme", blocking, "file:///etc/passwd", "scheme"},
		{"ftp scheme", blocking, "ftp://example.com", "scheme"},
		{"credentials in URL", blocking, "https://user:pw@www.wikidata.org/w/api.php", "credentials"},
		{"missing host", blocking, "https:///w/api.php", "hostname"},
		{"localhost blocked", blocking, "http://localhost/w/api.php", "localhost"},
		{"private IP blocked", blocking, "http://192.168.1.10/w/api.php", "private IP"},
		{"metadata IP blocked", blocking, "http://169.254.169.254/", "private IP"},
		{"localhost allowed when permissive", permissive, "http://localhost:8181/w/api.php", ""},
		{"private IP allowed when permissive", permissive, "http://10.0.0.5/w/api.php", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.client.ValidateURL(tt.url)
			if tt.errContains == "" {
				if err != nil {
					t.Errorf("Expected no error for %s, got: %v", tt.url, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error for %s, got nil", tt.url)
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("Expected error to contain %q, got: %v", tt.errContains, err)
			}
		})
	}
}

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		ip        string
		isPrivate bool
	}{
		{"10.0.0.1", true},
		{"172.16.0.1", true},
		{"172.31.255.255", true},
		{"192.168.0.1", true},
		{"127.0.0.1", true},
		{"169.254.169.254", true},
		{"0.0.0.0", true},
		{"0.1.2.3", true},
		{"224.0.0.1", true},
		{"240.0.0.1", true},
		{"8.8.8.8", false},
		{"91.198.174.192", false}, // Wikimedia text-lb

		{"::1", true},
		{"fe80::1", true},
		{"fc00::1", true},
		{"fd12:3456::1", true},
		{"fec0::1", true},
		{"ff02::1", true},
		{"::", true},
		{"2620:0:862:ed1a::1", false}, // Wikimedia
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			ip := net.ParseIP(tt.ip)
			if ip == nil {
				t.Fatalf("Failed to parse IP: %s", tt.ip)
			}
			if got := isPrivateIP(ip); got != tt.isPrivate {
				t.Errorf("isPrivateIP(%s) = %v, expected %v", tt.ip, got, tt.isPrivate)
			}
		})
	}
}

func TestIsLocalhost(t *testing.T) {
	tests := []struct {
		hostname string
		expected bool
	}{
		{"localhost", true},
		{"LOCALHOST", true},
		{"localhost.localdomain", true},
		{"wikibase.localhost", true},
		{"www.wikidata.org", false},
		{"local", false},
		{"local.host", false},
	}

	for _, tt := range tests {
		t.Run(tt.hostname, func(t *testing.T) {
			if got := isLocalhost(tt.hostname); got != tt.expected {
				t.Errorf("isLocalhost(%q) = %v, expected %v", tt.hostname, got, tt.expected)
			}
		})
	}
}

func TestRedirectToBlockedScheme(t *testing.T) {
	client := NewSaferClient(5*time.Second, SaferClientOptions{BlockPrivateIP: boolPtr(false)})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "ftp://example.com/", http.StatusFound)
	}))
	defer server.Close()

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	resp, err := client.Do(req)
	if err == nil {
		resp.Body.Close()
		t.Fatal("Expected redirect to ftp to be blocked")
	}
	if !strings.Contains(err.Error(), "redirect blocked") {
		t.Errorf("Expected redirect blocked error, got: %v", err)
	}
}

func TestMaxRedirects(t *testing.T) {
	maxRedirects := 3
	client := NewSaferClient(5*time.Second, SaferClientOptions{
		BlockPrivateIP: boolPtr(false),
		MaxRedirects:   &maxRedirects,
	})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/again", http.StatusFound)
	}))
	defer server.Close()

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	resp, err := client.Do(req)
	if err == nil {
		resp.Body.Close()
		t.Fatal("Expected error for too many redirects, got nil")
	}
	if !strings.Contains(err.Error(), "stopped after 3 redirects") {
		t.Errorf("Expected redirect limit error, got: %v", err)
	}
}

func TestDo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	}))
	defer server.Close()

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	resp, err := WrapClient(server.Client()).Do(req)
	if err != nil {
		t.Fatalf("Valid request failed: %v", err)
	}
	resp.Body.Close()

	blocking := NewSaferClient(5*time.Second, SaferClientOptions{})
	req, _ = http.NewRequest(http.MethodGet, "http://localhost/", nil)
	resp, err = blocking.Do(req)
	if err == nil {
		resp.Body.Close()
		t.Fatal("Expected error for localhost request, got nil")
	}
	if !strings.Contains(err.Error(), "request blocked") {
		t.Errorf("Expected request blocked error, got: %v", err)
	}
}
