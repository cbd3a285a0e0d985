// Package ingest consumes telemetry published over MQTT and converts
// it into raw readings for the aggregation path.
package ingest

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/plantradar/plantradar/pkg/models"
)

// machinePayload is the per-machine telemetry document published on
// factory/<machine>/telemetry. Every channel field is optional; only
// the fields present become readings.
type machinePayload struct {
	Timestamp    *time.Time `json:"timestamp"`
	MachineID    string     `json:"machineId"`
	Profile      string     `json:"profile"`
	Temperature  *float64   `json:"temperature"`
	Vibration    *float64   `json:"vibration"`
	Pressure     *float64   `json:"pressure"`
	MotorCurrent *float64   `json:"motorCurrent"`
	WearIndex    *float64   `json:"wearIndex"`
}

// legacyPayload is the single-reading document published on
// sensors/<name>/telemetry by older publishers.
type legacyPayload struct {
	SensorID  string     `json:"sensor_id"`
	Value     *float64   `json:"value"`
	Unit      string     `json:"unit"`
	Timestamp *time.Time `json:"timestamp"`
}

// canonicalUnits maps each channel to the unit its publishers use.
var canonicalUnits = map[models.ChannelID]string{
	models.ChannelTemperature:  "°C",
	models.ChannelVibration:    "mm/s",
	models.ChannelPressure:     "bar",
	models.ChannelMotorCurrent: "A",
	models.ChannelWearIndex:    "%",
}

// ParseMessage converts one MQTT message into readings. The topic
// family decides the payload shape.
func ParseMessage(topic string, payload []byte, now time.Time) ([]models.RawReading, error) {
	switch {
	case strings.HasPrefix(topic, "factory/"):
		return parseMachinePayload(payload, now)
	case strings.HasPrefix(topic, "sensors/"):
		return parseLegacyPayload(topic, payload, now)
	default:
		return nil, fmt.Errorf("topic %s: %w", topic, ErrUnknownTopic)
	}
}

func parseMachinePayload(payload []byte, now time.Time) ([]models.RawReading, error) {
	var doc machinePayload
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	ts := now
	if doc.Timestamp != nil {
		ts = *doc.Timestamp
	}

	fields := []struct {
		channel models.ChannelID
		value   *float64
	}{
		{models.ChannelTemperature, doc.Temperature},
		{models.ChannelVibration, doc.Vibration},
		{models.ChannelPressure, doc.Pressure},
		{models.ChannelMotorCurrent, doc.MotorCurrent},
		{models.ChannelWearIndex, doc.WearIndex},
	}

	var readings []models.RawReading

	for _, field := range fields {
		if field.value == nil {
			continue
		}

		metadata := map[string]string{"alias": string(field.channel)}
		if doc.MachineID != "" {
			metadata["machine_id"] = doc.MachineID
		}

		if doc.Profile != "" {
			metadata["profile"] = doc.Profile
		}

		readings = append(readings, models.RawReading{
			SensorID:  fmt.Sprintf("opcua_%s", field.channel),
			Value:     *field.value,
			Unit:      canonicalUnits[field.channel],
			Timestamp: ts,
			Metadata:  metadata,
		})
	}

	return readings, nil
}

func parseLegacyPayload(topic string, payload []byte, now time.Time) ([]models.RawReading, error) {
	var doc legacyPayload
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	sensorID := doc.SensorID
	if sensorID == "" {
		sensorID = topicSensor(topic)
	}

	if sensorID == "" {
		return nil, ErrMissingSensorID
	}

	var value float64
	if doc.Value != nil {
		value = *doc.Value
	}

	ts := now
	if doc.Timestamp != nil {
		ts = *doc.Timestamp
	}

	return []models.RawReading{{
		SensorID:  sensorID,
		Value:     value,
		Unit:      doc.Unit,
		Timestamp: ts,
	}}, nil
}

// topicSensor extracts the sensor name from sensors/<name>/telemetry.
func topicSensor(topic string) string {
	parts := strings.Split(topic, "/")
	if len(parts) < 2 {
		return ""
	}

	return parts[1]
}
