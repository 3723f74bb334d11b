// Package gateway ingests readings posted by greenhouse sensor nodes and
// serves their history as JSON.
package gateway

import "time"

// TimestampLayout is the format readings are stamped and stored with.
const TimestampLayout = "2006-01-02 15:04:05"

// Reading is one sample from a sensor node. Sensor values are optional: a
// node may post only the pump state.
type Reading struct {
	Timestamp    string   `json:"timestamp"`
	Temperature  *float64 `json:"temperature"`
	AirHumidity  *float64 `json:"air_humidity"`
	SoilMoisture *int     `json:"soil_moisture"`
	PumpOn       bool     `json:"pump_on"`
}

// Time parses the reading's timestamp.
func (r Reading) Time() (time.Time, error) {
	return time.Parse(TimestampLayout, r.Timestamp)
}
