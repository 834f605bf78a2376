// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business metrics track the size and growth of the catalog
var (
	// AuthorsTotal tracks the number of registered authors
	AuthorsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_authors_total",
			Help: "Total number of authors in the catalog",
		},
	)

	// MagazinesTotal tracks the number of registered magazines
	MagazinesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_magazines_total",
			Help: "Total number of magazines in the catalog",
		},
	)

	// ArticlesTotal tracks the number of published articles
	ArticlesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_articles_total",
			Help: "Total number of articles in the catalog",
		},
	)

	// EntitiesCreatedTotal counts successful creations by entity kind
	EntitiesCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_entities_created_total",
			Help: "Total number of entities created, by entity",
		},
		[]string{"entity"},
	)

	// ArticlesPublishedTotal counts articles by magazine category
	ArticlesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_articles_published_total",
			Help: "Total number of articles published, by magazine category",
		},
		[]string{"category"},
	)

	// ValidationErrorsTotal counts rejected constructions by entity and error kind
	ValidationErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_validation_errors_total",
			Help: "Total number of rejected entity constructions",
		},
		[]string{"entity", "kind"},
	)
)
