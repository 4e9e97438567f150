package jobs

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"fedspeak/internal/dictionary"
	"fedspeak/internal/models"
	"fedspeak/internal/validation"
)

// FailureNotifier is told about entries whose url started failing.
type FailureNotifier interface {
	NotifyLinkFailures(results []models.URLHealth)
}

// LinkChecker periodically checks that each dictionary entry's url is reachable.
type LinkChecker struct {
	dict     *dictionary.Dictionary
	interval time.Duration
	delay    time.Duration
	client   *http.Client
	validate func(string) (bool, string)
	notifier FailureNotifier

	mu      sync.RWMutex
	results map[string]models.URLHealth
}

// NewLinkChecker creates a new link checker. delay is the pause between two
// requests within a single pass.
func NewLinkChecker(dict *dictionary.Dictionary, interval, delay time.Duration) *LinkChecker {
	return &LinkChecker{
		dict:     dict,
		interval: interval,
		delay:    delay,
		client: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return errors.New("too many redirects")
				}
				return nil
			},
		},
		validate: validation.ValidateURLForHealthCheck,
		results:  make(map[string]models.URLHealth),
	}
}

// SetNotifier registers a notifier for newly failing urls.
func (c *LinkChecker) SetNotifier(n FailureNotifier) {
	c.notifier = n
}

// Start begins the background check loop. It returns when ctx is cancelled.
func (c *LinkChecker) Start(ctx context.Context) {
	log.Printf("Link checker started (interval: %v)", c.interval)

	c.CheckAll(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Link checker stopped")
			return
		case <-ticker.C:
			c.CheckAll(ctx)
		}
	}
}

// CheckAll checks every entry that has a url, in dictionary order. Entries
// that were healthy (or never checked) and now fail are passed to the notifier.
func (c *LinkChecker) CheckAll(ctx context.Context) {
	var (
		checked int
		failed  []models.URLHealth
	)

loop:
	for _, key := range c.dict.Keys() {
		entry, _ := c.dict.Entry(key)
		if entry.URL == "" {
			continue
		}

		if checked > 0 && c.delay > 0 {
			select {
			case <-ctx.Done():
				break loop
			case <-time.After(c.delay):
			}
		}
		if ctx.Err() != nil {
			break
		}
		checked++

		status, errMsg := c.checkURL(ctx, entry.URL)
		h := models.URLHealth{
			Acronym:   key,
			URL:       entry.URL,
			Status:    status,
			Error:     errMsg,
			CheckedAt: time.Now().UTC(),
		}
		if prev, seen := c.store(h); !h.IsHealthy() && (!seen || prev.IsHealthy()) {
			failed = append(failed, h)
		}
	}

	if checked > 0 {
		log.Printf("Link checker: checked %d urls, %d newly failing", checked, len(failed))
	}
	if len(failed) > 0 && c.notifier != nil {
		c.notifier.NotifyLinkFailures(failed)
	}
}

// Snapshot returns the latest result per entry, ordered by acronym.
func (c *LinkChecker) Snapshot() []models.URLHealth {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.URLHealth, 0, len(c.results))
	for _, key := range c.dict.Keys() {
		if h, ok := c.results[key]; ok {
			out = append(out, h)
		}
	}
	return out
}

// store records h and returns the result it replaced.
func (c *LinkChecker) store(h models.URLHealth) (models.URLHealth, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev, seen := c.results[h.Acronym]
	c.results[h.Acronym] = h
	return prev, seen
}

// checkURL performs a HEAD request. URLs that resolve to private addresses are
// rejected before any request is made.
func (c *LinkChecker) checkURL(ctx context.Context, url string) (string, string) {
	if valid, msg := c.validate(url); !valid {
		return models.HealthUnhealthy, msg
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return models.HealthUnhealthy, "invalid URL: " + err.Error()
	}
	req.Header.Set("User-Agent", "FedSpeak-LinkChecker/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return models.HealthUnknown, "connection failed: " + err.Error()
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return models.HealthUnhealthy, resp.Status
	}
	return models.HealthHealthy, ""
}
