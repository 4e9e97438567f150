package email

import (
	"fmt"
	"html"
	"strings"

	"fedspeak/internal/config"
	"fedspeak/internal/models"
)

// Templates provides email template generation.
type Templates struct {
	cfg *config.Config
}

// NewTemplates creates a new templates instance.
func NewTemplates(cfg *config.Config) *Templates {
	return &Templates{cfg: cfg}
}

// baseHTML wraps content in the shared HTML email layout.
func (t *Templates) baseHTML(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>%s</title>
    <style>
        body { font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #1e3a8a; color: white; padding: 16px 20px; border-radius: 8px 8px 0 0; }
        .content { background: #f9fafb; padding: 20px; border: 1px solid #e5e7eb; }
        .entry { background: white; border: 1px solid #e5e7eb; border-radius: 6px; padding: 12px; margin: 12px 0; }
        .error { color: #dc2626; }
        .footer { padding: 12px; font-size: 12px; color: #6b7280; text-align: center; }
    </style>
</head>
<body>
    <div class="header"><h1>%s</h1></div>
    <div class="content">%s</div>
    <div class="footer"><a href="%s">%s</a></div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(t.cfg.SiteTitle), content, t.cfg.BaseURL, html.EscapeString(t.cfg.SiteTitle))
}

// LinksUnhealthy generates the alert for entries whose url stopped responding.
func (t *Templates) LinksUnhealthy(results []models.URLHealth) (subject, htmlBody, textBody string) {
	count := len(results)
	subject = fmt.Sprintf("[%s] %d acronym url(s) failed their check", t.cfg.SiteTitle, count)

	var entriesHTML, entriesText strings.Builder
	for _, r := range results {
		errMsg := r.Error
		if errMsg == "" {
			errMsg = "Unknown error"
		}

		fmt.Fprintf(&entriesHTML, `<div class="entry"><p><strong>%s</strong> <a href="%s">%s</a></p><p class="error">%s</p></div>`,
			html.EscapeString(r.Acronym),
			html.EscapeString(r.URL),
			html.EscapeString(r.URL),
			html.EscapeString(errMsg),
		)
		fmt.Fprintf(&entriesText, "\n- %s: %s\n  Error: %s\n", r.Acronym, r.URL, errMsg)
	}

	htmlBody = t.baseHTML(subject, fmt.Sprintf(
		`<p>The following %d dictionary url(s) failed their health check and may need updating:</p>%s<p>Current status: <a href="%s/api/links/health">%s/api/links/health</a></p>`,
		count, entriesHTML.String(), t.cfg.BaseURL, t.cfg.BaseURL,
	))

	textBody = fmt.Sprintf("URL Check Alert\n\n%d dictionary url(s) failed their health check:\n%s\nCurrent status: %s/api/links/health\n\n--\n%s\n",
		count, entriesText.String(), t.cfg.BaseURL, t.cfg.SiteTitle)

	return
}
