package email

import (
	"strings"
	"testing"

	"fedspeak/internal/config"
	"fedspeak/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		BaseURL:      "https://fedspeak.example.gov",
		SiteTitle:    "FedSpeak",
		SMTPHost:     "smtp.example.gov",
		SMTPPort:     587,
		SMTPFrom:     "noreply@example.gov",
		SMTPFromName: "FedSpeak",
		SMTPTLS:      "starttls",
		NotifyEmails: "maintainers@example.gov",
	}
}

func TestService_Disabled(t *testing.T) {
	s := NewService(&config.Config{})
	if s.IsEnabled() {
		t.Fatal("service enabled without SMTP settings")
	}
	if err := s.SendEmail([]string{"a@example.gov"}, "subject", "<p>hi</p>", "hi"); err != nil {
		t.Errorf("SendEmail() on disabled service = %v, want nil", err)
	}
}

func TestService_NoRecipients(t *testing.T) {
	s := NewService(testConfig())
	if err := s.SendEmail(nil, "subject", "<p>hi</p>", "hi"); err != nil {
		t.Errorf("SendEmail() without recipients = %v, want nil", err)
	}
}

func TestBuildMessage(t *testing.T) {
	tests := []struct {
		name     string
		fromName string
		htmlBody string
		textBody string
		want     []string
		notWant  []string
	}{
		{
			name:     "both parts",
			fromName: "FedSpeak",
			htmlBody: "<p>html</p>",
			textBody: "text",
			want: []string{
				"From: FedSpeak <noreply@example.gov>\r\n",
				"To: a@example.gov, b@example.gov\r\n",
				"Subject: Hello\r\n",
				`boundary="` + boundary + `"`,
				"Content-Type: text/plain",
				"Content-Type: text/html",
				"--" + boundary + "--\r\n",
			},
		},
		{
			name:     "text only, bare sender",
			textBody: "text",
			want:     []string{"From: noreply@example.gov\r\n", "Content-Type: text/plain"},
			notWant:  []string{"Content-Type: text/html"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.SMTPFromName = tt.fromName
			msg := NewService(cfg).buildMessage([]string{"a@example.gov", "b@example.gov"}, "Hello", tt.htmlBody, tt.textBody)

			for _, w := range tt.want {
				if !strings.Contains(msg, w) {
					t.Errorf("message missing %q", w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(msg, w) {
					t.Errorf("message unexpectedly contains %q", w)
				}
			}
		})
	}
}

func TestLinksUnhealthy(t *testing.T) {
	tmpl := NewTemplates(testConfig())
	subject, htmlBody, textBody := tmpl.LinksUnhealthy([]models.URLHealth{
		{Acronym: "GSA", URL: "https://www.gsa.gov", Error: "connection failed: <timeout>"},
		{Acronym: "OMB", URL: "https://www.whitehouse.gov/omb"},
	})

	if subject != "[FedSpeak] 2 acronym url(s) failed their check" {
		t.Errorf("subject = %q", subject)
	}
	if !strings.Contains(htmlBody, "&lt;timeout&gt;") || strings.Contains(htmlBody, "<timeout>") {
		t.Error("error message not HTML-escaped")
	}
	if !strings.Contains(textBody, "- OMB: https://www.whitehouse.gov/omb\n  Error: Unknown error") {
		t.Errorf("text body missing OMB entry:\n%s", textBody)
	}
	if !strings.Contains(textBody, "https://fedspeak.example.gov/api/links/health") {
		t.Error("text body missing status link")
	}
}

func TestNotifier_Enabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
		want bool
	}{
		{"configured", testConfig(), true},
		{"no smtp", &config.Config{NotifyEmails: "a@example.gov"}, false},
		{"no recipients", func() *config.Config { c := testConfig(); c.NotifyEmails = ""; return c }(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNotifier(tt.cfg)
			if got := n.IsEnabled(); got != tt.want {
				t.Errorf("IsEnabled() = %v, want %v", got, tt.want)
			}
			// Must never block or panic when disabled or given nothing.
			n.NotifyLinkFailures(nil)
		})
	}
}
