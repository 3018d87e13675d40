package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dukerupert/sabzi/internal/model"
	"github.com/dukerupert/sabzi/internal/seed"
)

type Registry struct {
	reg           *prometheus.Registry
	ItemsImported prometheus.Counter
	ParsedRecords *prometheus.CounterVec
	ItemsCreated  prometheus.Counter
	ItemsDeleted  prometheus.Counter
	StatusChanges *prometheus.CounterVec
	Items         *prometheus.GaugeVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	imported := prometheus.NewCounter(prometheus.CounterOpts{Name: "sabzi_items_imported_total"})
	parsed := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "sabzi_parsed_records_total"}, []string{"rule"})
	created := prometheus.NewCounter(prometheus.CounterOpts{Name: "sabzi_items_created_total"})
	deleted := prometheus.NewCounter(prometheus.CounterOpts{Name: "sabzi_items_deleted_total"})
	statusChanges := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "sabzi_status_changes_total"}, []string{"status"})
	items := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "sabzi_items"}, []string{"status"})

	r.MustRegister(imported, parsed, created, deleted, statusChanges, items)
	return &Registry{
		reg:           r,
		ItemsImported: imported,
		ParsedRecords: parsed,
		ItemsCreated:  created,
		ItemsDeleted:  deleted,
		StatusChanges: statusChanges,
		Items:         items,
	}
}

// ObserveRecords counts parsed records by the rule that split them.
func (r *Registry) ObserveRecords(records []seed.Record) {
	for _, rec := range records {
		r.ParsedRecords.WithLabelValues(rec.Rule).Inc()
	}
}

// SetItemCounts sets the per-bucket gauge from a full item listing.
func (r *Registry) SetItemCounts(items []model.ShoppingItem) {
	counts := make(map[model.ItemStatus]int, len(model.Statuses))
	for _, item := range items {
		counts[item.Status]++
	}
	for _, status := range model.Statuses {
		r.Items.WithLabelValues(string(status)).Set(float64(counts[status]))
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
