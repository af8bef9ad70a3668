// Package geo provides the geographic primitives shared by the
// coordination core: the Point coordinate type, great-circle distance
// via the haversine formula, and the fixed-point distance formatting
// used on the wire.
package geo
