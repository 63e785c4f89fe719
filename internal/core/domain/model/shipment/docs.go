// Package shipment contains the Shipment aggregate: the carrier-side record
// of a packed order and the delivery status fed back from carrier tracking.
package shipment
