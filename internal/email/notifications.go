package email

import (
	"fedspeak/internal/config"
	"fedspeak/internal/models"
)

// Notifier sends email notifications for link checker events.
type Notifier struct {
	service    *Service
	templates  *Templates
	recipients []string
}

// NewNotifier creates a new email notifier.
func NewNotifier(cfg *config.Config) *Notifier {
	return &Notifier{
		service:    NewService(cfg),
		templates:  NewTemplates(cfg),
		recipients: cfg.NotifyRecipients(),
	}
}

// IsEnabled returns true if notifications can be delivered.
func (n *Notifier) IsEnabled() bool {
	return n.service.IsEnabled() && len(n.recipients) > 0
}

// NotifyLinkFailures emails the maintainers about entries whose url failed.
func (n *Notifier) NotifyLinkFailures(results []models.URLHealth) {
	if !n.IsEnabled() || len(results) == 0 {
		return
	}

	subject, htmlBody, textBody := n.templates.LinksUnhealthy(results)
	n.service.SendAsync(n.recipients, subject, htmlBody, textBody)
}
