package pagination

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RequestsTotal counts paginated list requests by page bucket.
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "catalog_pagination_requests_total",
		Help: "Total number of paginated list requests",
	},
	[]string{"page_range"},
)

// RecordRequest records a paginated request for the given page.
func RecordRequest(page int) {
	RequestsTotal.WithLabelValues(pageRangeBucket(page)).Inc()
}

func pageRangeBucket(page int) string {
	switch {
	case page <= 1:
		return "1"
	case page <= 10:
		return "2-10"
	default:
		return "11+"
	}
}
