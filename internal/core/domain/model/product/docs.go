// Package product holds the catalog data the fulfillment pipeline reads:
// safety-buffer windows for near-expiry exclusion and unit weight/cost for
// carton weighing.
package product
