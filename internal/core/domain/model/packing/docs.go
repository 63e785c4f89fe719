// Package packing contains the PackTask aggregate: packing-station work for
// one picked order. The task owns its instructions, the cartons being filled
// and the shipping label, and refuses to complete until every picked unit is
// in a carton and the label is attached.
package packing
