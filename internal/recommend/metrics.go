package recommend

import "github.com/prometheus/client_golang/prometheus"

var (
	tierItemsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_related_products_tier_total",
			Help: "Related products contributed by each fallback tier",
		},
		[]string{"tier"},
	)

	enrichFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_related_products_enrich_failures_total",
			Help: "Business profile lookups that failed during related product enrichment",
		},
	)
)

// RegisterMetrics exposes the assembler counters on reg.
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(tierItemsTotal, enrichFailuresTotal)
}
