package server

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"io"
	"math/big"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"

	"fedspeak/internal/config"
	"fedspeak/internal/dictionary"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:             "test",
		ResponseBudget:  2000,
		MaxTextLength:   10000,
		CORSOrigins:     "*",
		RateLimitMax:    100,
		RateLimitWindow: time.Minute,
		SiteTitle:       "FedSpeak",
		SiteTagline:     "Decode federal government acronyms",
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()

	dict, _, err := dictionary.LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() error = %v", err)
	}

	s := New(cfg)
	s.App.Get("/api/boom", func(c fiber.Ctx) error {
		panic("boom")
	})
	s.RegisterRoutes(Deps{Dict: dict})
	return s
}

func doRequest(t *testing.T, s *Server, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func TestRoutes(t *testing.T) {
	s := newTestServer(t, testConfig())

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
		wantType   string
		wantBody   string
	}{
		{"decode", http.MethodGet, "/api/decode?acronym=GSA", 200, "application/json", `"acronym":"GSA"`},
		{"encode", http.MethodGet, "/api/encode?name=Office+of+Management+and+Budget", 200, "application/json", `"acronym":"OMB"`},
		{"missing params", http.MethodGet, "/api/decode", 400, "application/json", `"usage"`},
		{"acronym list", http.MethodGet, "/api/acronyms", 200, "application/json", `"count":`},
		{"single acronym", http.MethodGet, "/api/acronyms/FAR", 200, "application/json", `"Federal Acquisition Regulation"`},
		{"stats disabled", http.MethodGet, "/api/stats/lookups", 503, "application/json", `"error"`},
		{"link health disabled", http.MethodGet, "/api/links/health", 503, "application/json", `"error"`},
		{"unknown api route", http.MethodGet, "/api/nope", 404, "application/json", `"error"`},
		{"panic", http.MethodGet, "/api/boom", 500, "application/json", `{"error":"Internal server error"}`},
		{"healthz", http.MethodGet, "/healthz", 200, "application/json", `"status":"ok"`},
		{"metrics", http.MethodGet, "/metrics", 200, "text/plain", "go_goroutines"},
		{"home", http.MethodGet, "/", 200, "text/html", "Featured"},
		{"home search", http.MethodGet, "/?q=gsa", 200, "text/html", "General Services Administration"},
		{"home scan", http.MethodGet, "/?q=GSA+and+OMB", 200, "text/html", "2 matches"},
		{"home encode", http.MethodGet, "/?q=Department+of+Defense&dir=encode", 200, "text/html", "DOD"},
		{"home miss", http.MethodGet, "/?q=XYZZY", 200, "text/html", "No matches"},
		{"unknown page", http.MethodGet, "/nope", 404, "text/html", "Back to search"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doRequest(t, s, httptest.NewRequest(tt.method, tt.target, nil))
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", resp.StatusCode, tt.wantStatus, body)
			}
			if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, tt.wantType) {
				t.Errorf("Content-Type = %q, want %q", ct, tt.wantType)
			}
			if !strings.Contains(body, tt.wantBody) {
				t.Errorf("body does not contain %q:\n%s", tt.wantBody, body)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t, testConfig())

	resp, _ := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/api/decode?acronym=GSA", nil))
	if id := resp.Header.Get("X-Request-ID"); len(id) != 36 {
		t.Errorf("X-Request-ID = %q, want a UUID", id)
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, testConfig())

	req := httptest.NewRequest(http.MethodOptions, "/api/decode", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")

	resp, _ := doRequest(t, s, req)
	if resp.StatusCode != fiber.StatusNoContent {
		t.Errorf("status = %d, want 204", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
	if got := resp.Header.Get("Access-Control-Allow-Methods"); !strings.Contains(got, "POST") {
		t.Errorf("Access-Control-Allow-Methods = %q, want POST", got)
	}
}

func TestJSONNotHTMLEscaped(t *testing.T) {
	s := newTestServer(t, testConfig())

	_, body := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/api/decode?text=%3Cb%3E", nil))
	if !strings.Contains(body, `"query":"<b>"`) {
		t.Errorf("body = %s, want unescaped query", body)
	}
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitMax = 2
	s := newTestServer(t, cfg)

	for i := 0; i < 2; i++ {
		resp, _ := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/api/acronyms", nil))
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, resp.StatusCode)
		}
	}

	resp, body := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/api/acronyms", nil))
	if resp.StatusCode != fiber.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", resp.StatusCode)
	}
	if !strings.Contains(body, "Rate limit exceeded") {
		t.Errorf("body = %s", body)
	}

	// Health checks are never limited.
	resp, _ = doRequest(t, s, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("/healthz status = %d, want 200", resp.StatusCode)
	}
}

func TestBuildTLSConfig(t *testing.T) {
	dir := t.TempDir()
	badCA := filepath.Join(dir, "bad.pem")
	if err := os.WriteFile(badCA, []byte("not a certificate"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		caFile     string
		wantErr    bool
		wantClient bool
	}{
		{"tls only", "", false, false},
		{"missing ca", filepath.Join(dir, "missing.pem"), true, false},
		{"invalid ca", badCA, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tlsConfig, err := buildTLSConfig(&config.Config{TLSEnabled: true, TLSCAFile: tt.caFile})
			if (err != nil) != tt.wantErr {
				t.Fatalf("buildTLSConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if tlsConfig.MinVersion == 0 {
				t.Error("MinVersion not set")
			}
			if (tlsConfig.ClientCAs != nil) != tt.wantClient {
				t.Errorf("ClientCAs set = %v, want %v", tlsConfig.ClientCAs != nil, tt.wantClient)
			}
		})
	}
}

func TestHomeTextTooLong(t *testing.T) {
	cfg := testConfig()
	cfg.MaxTextLength = 20
	s := newTestServer(t, cfg)

	resp, body := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/?q="+strings.Repeat("GSA+", 10), nil))
	if resp.StatusCode != fiber.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", resp.StatusCode)
	}
	if !strings.Contains(body, "Text is too long to scan") {
		t.Errorf("body does not explain the limit:\n%s", body)
	}

	resp, _ = doRequest(t, s, httptest.NewRequest(http.MethodGet, "/?q=GSA", nil))
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("short query status = %d, want 200", resp.StatusCode)
	}
}

// writeSelfSignedCert writes a localhost certificate and key into dir.
func writeSelfSignedCert(t *testing.T, dir string) (certFile, keyFile string) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "localhost"},
		DNSNames:     []string{"localhost"},
		IPAddresses:  []net.IP{net.ParseIP("127.0.0.1")},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatal(err)
	}
	keyDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		t.Fatal(err)
	}

	certFile = filepath.Join(dir, "cert.pem")
	keyFile = filepath.Join(dir, "key.pem")
	if err := os.WriteFile(certFile, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(keyFile, pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER}), 0o600); err != nil {
		t.Fatal(err)
	}
	return certFile, keyFile
}

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()
	return addr
}

func TestStartTLS(t *testing.T) {
	certFile, keyFile := writeSelfSignedCert(t, t.TempDir())

	cfg := testConfig()
	cfg.ServerAddr = freeAddr(t)
	cfg.TLSEnabled = true
	cfg.TLSCertFile = certFile
	cfg.TLSKeyFile = keyFile
	s := newTestServer(t, cfg)

	errCh := make(chan error, 1)
	go func() { errCh <- s.Start() }()

	var conn *tls.Conn
	deadline := time.Now().Add(5 * time.Second)
	for {
		select {
		case err := <-errCh:
			t.Fatalf("Start() error = %v", err)
		default:
		}
		var err error
		conn, err = tls.Dial("tcp", cfg.ServerAddr, &tls.Config{InsecureSkipVerify: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("tls.Dial() error = %v", err)
		}
		time.Sleep(50 * time.Millisecond)
	}
	defer func() {
		conn.Close()
		if err := s.Shutdown(); err != nil {
			t.Errorf("Shutdown() error = %v", err)
		}
	}()

	state := conn.ConnectionState()
	if !state.HandshakeComplete {
		t.Fatal("handshake not complete")
	}
	if state.Version < tls.VersionTLS12 {
		t.Errorf("version = %x, want at least TLS 1.2", state.Version)
	}
	if len(state.PeerCertificates) == 0 || state.PeerCertificates[0].Subject.CommonName != "localhost" {
		t.Errorf("peer certificate = %v, want localhost", state.PeerCertificates)
	}
}

func TestApplyTLSConfig(t *testing.T) {
	pool := x509.NewCertPool()
	src := &tls.Config{MinVersion: tls.VersionTLS12, ClientCAs: pool, ClientAuth: tls.RequireAndVerifyClientCert}
	dst := &tls.Config{Certificates: []tls.Certificate{{}}}

	applyTLSConfig(dst, src)

	if len(dst.Certificates) != 1 {
		t.Error("certificates were dropped")
	}
	if dst.MinVersion != tls.VersionTLS12 || dst.ClientCAs != pool || dst.ClientAuth != tls.RequireAndVerifyClientCert {
		t.Errorf("settings not copied: %+v", dst)
	}
}
