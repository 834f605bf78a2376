package metrics

// RecordEntityCreated records a successful creation of an author, magazine or article.
func RecordEntityCreated(entity string) {
	EntitiesCreatedTotal.WithLabelValues(entity).Inc()
}

// RecordArticlePublished records a new article under its magazine category.
// Category labels are bounded by the number of magazines in the catalog.
func RecordArticlePublished(category string) {
	ArticlesPublishedTotal.WithLabelValues(category).Inc()
	RecordEntityCreated("article")
}

// RecordValidationError records a construction rejected by domain validation.
// Kind is "type", "value" or "immutable".
func RecordValidationError(entity, kind string) {
	ValidationErrorsTotal.WithLabelValues(entity, kind).Inc()
}

// UpdateCatalogTotals sets the catalog size gauges.
// This gauge should be updated periodically to reflect the current state.
func UpdateCatalogTotals(authors, magazines, articles int64) {
	AuthorsTotal.Set(float64(authors))
	MagazinesTotal.Set(float64(magazines))
	ArticlesTotal.Set(float64(articles))
}
