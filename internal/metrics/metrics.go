package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fedspeak/internal/models"
	"fedspeak/internal/truncate"
)

var (
	lookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fedspeak_lookups_total",
			Help: "Total decode/encode requests by mode and outcome",
		},
		[]string{"direction", "mode", "outcome"},
	)

	truncationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fedspeak_truncations_total",
			Help: "Responses that had to be reduced to fit the size budget, by final step",
		},
		[]string{"direction", "step"},
	)

	acronymLookupDesc = prometheus.NewDesc(
		"fedspeak_acronym_lookups_total",
		"Persisted lookup count by term and outcome",
		[]string{"term", "direction", "outcome"},
		nil,
	)

	urlHealthDesc = prometheus.NewDesc(
		"fedspeak_entry_url_healthy",
		"1 if the entry's url answered its last health check, 0 otherwise",
		[]string{"acronym"},
		nil,
	)
)

// LookupStore persists lookup counts.
type LookupStore interface {
	IncrementAcronymLookup(ctx context.Context, term, direction, outcome string) error
	GetAllAcronymLookups(ctx context.Context) ([]models.AcronymLookup, error)
}

// HealthSource reports the latest URL health checks.
type HealthSource interface {
	Snapshot() []models.URLHealth
}

// LookupCollector is a custom Prometheus collector that reads persisted
// lookup counts from the store on each scrape.
type LookupCollector struct {
	store LookupStore
}

// Describe sends the metric descriptor to the channel.
func (c *LookupCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- acronymLookupDesc
}

// Collect queries the store for all lookups and emits them as counters.
func (c *LookupCollector) Collect(ch chan<- prometheus.Metric) {
	lookups, err := c.store.GetAllAcronymLookups(context.Background())
	if err != nil {
		slog.Error("failed to collect acronym lookup metrics", "error", err)
		return
	}
	for _, l := range lookups {
		ch <- prometheus.MustNewConstMetric(
			acronymLookupDesc,
			prometheus.CounterValue,
			float64(l.Count),
			l.Term,
			l.Direction,
			l.Outcome,
		)
	}
}

// URLHealthCollector exports the link checker's results as gauges.
type URLHealthCollector struct {
	source HealthSource
}

// Describe sends the metric descriptor to the channel.
func (c *URLHealthCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- urlHealthDesc
}

// Collect emits one gauge per checked entry.
func (c *URLHealthCollector) Collect(ch chan<- prometheus.Metric) {
	for _, h := range c.source.Snapshot() {
		value := 0.0
		if h.IsHealthy() {
			value = 1
		}
		ch <- prometheus.MustNewConstMetric(urlHealthDesc, prometheus.GaugeValue, value, h.Acronym)
	}
}

// Recorder provides async lookup persistence.
type Recorder struct {
	store LookupStore
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// Init registers the metrics and, when given, the store-backed and health
// collectors. Either argument may be nil. Must be called once at startup.
func Init(store LookupStore, health HealthSource) {
	recorderOnce.Do(func() {
		prometheus.MustRegister(lookupsTotal, truncationsTotal)
		if store != nil {
			recorder = &Recorder{store: store}
			prometheus.MustRegister(&LookupCollector{store: store})
		}
		if health != nil {
			prometheus.MustRegister(&URLHealthCollector{source: health})
		}
	})
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Outcome classifies a response for metrics and persistence.
func Outcome(resp models.Response) string {
	switch {
	case !resp.Success:
		return models.OutcomeNotFound
	case resp.Mode == models.ModeScan:
		return models.OutcomeScanned
	default:
		return models.OutcomeResolved
	}
}

// RecordLookup counts a decode/encode response and, when a store is
// configured, persists its terms asynchronously. Scan misses are counted but
// not persisted since their query is free text.
func RecordLookup(direction string, resp models.Response) {
	outcome := Outcome(resp)
	lookupsTotal.WithLabelValues(direction, string(resp.Mode), outcome).Inc()

	if recorder == nil {
		return
	}

	var terms []string
	switch {
	case resp.Success:
		for _, r := range resp.Results {
			terms = append(terms, r.Acronym)
		}
	case resp.Mode == models.ModeSingle:
		if term := strings.TrimSpace(resp.Query); term != "" {
			terms = append(terms, term)
		}
	}
	if len(terms) == 0 {
		return
	}

	go recorder.persist(direction, outcome, terms)
}

func (r *Recorder) persist(direction, outcome string, terms []string) {
	for _, term := range terms {
		if err := r.store.IncrementAcronymLookup(context.Background(), term, direction, outcome); err != nil {
			slog.Error("failed to record acronym lookup", "term", term, "direction", direction, "outcome", outcome, "error", err)
		}
	}
}

// RecordTruncation counts a response that had to be reduced.
func RecordTruncation(direction string, step truncate.Step) {
	if step == truncate.StepNone {
		return
	}
	truncationsTotal.WithLabelValues(direction, step.String()).Inc()
}
