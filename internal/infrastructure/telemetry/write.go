package telemetry

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// RecordRender writes one render pass measurement.
//
// The write is non-blocking; data is batched and sent asynchronously.
// Tags stay low-cardinality: source is "hub" or "snapshot".
func (c *Client) RecordRender(duration time.Duration, entries, slots, entities int, source string) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"render",
		map[string]string{
			"source": source,
		},
		map[string]interface{}{
			"duration_ms": float64(duration.Microseconds()) / 1000.0,
			"entries":     entries,
			"slots":       slots,
			"entities":    entities,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// RecordHubFetch writes one hub round-trip measurement, tagged with the
// command that was issued and whether it succeeded.
func (c *Client) RecordHubFetch(command string, duration time.Duration, ok bool) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"hub_fetch",
		map[string]string{
			"command": command,
		},
		map[string]interface{}{
			"duration_ms": float64(duration.Microseconds()) / 1000.0,
			"ok":          ok,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}
