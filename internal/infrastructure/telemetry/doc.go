// Package telemetry writes render statistics to InfluxDB.
//
// Two measurements are recorded:
//
//	render       one point per render pass: duration, entry/slot/entity
//	             counts, tagged with the data source (hub or snapshot)
//	hub_fetch    one point per hub command round-trip
//
// Writes are batched and non-blocking; a slow or absent InfluxDB never
// delays a render. Telemetry is optional: when disabled in configuration,
// the service runs with a nil sink and records nothing.
package telemetry
