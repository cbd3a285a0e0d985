// Package fetch pkg/fetch/endpoints.go
package fetch

import (
	"encoding/json"
	"log"
	"time"

	"github.com/plantradar/plantradar/pkg/models"
)

// Endpoint identifies one of the read endpoints the layer consumes.
// Shapes matter, exact paths are deployment configuration.
type Endpoint string

const (
	EndpointReadings     Endpoint = "readings"
	EndpointPredictions  Endpoint = "predictions"
	EndpointAIStatus     Endpoint = "ai_status"
	EndpointBrokerStatus Endpoint = "broker_status"
	EndpointDerived      Endpoint = "derived"
)

// DefaultPaths maps each endpoint to its default upstream path.
func DefaultPaths() map[Endpoint]string {
	return map[Endpoint]string{
		EndpointReadings:     "/api/v1/sensor-data/recent",
		EndpointPredictions:  "/api/v1/predictions/recent",
		EndpointAIStatus:     "/api/v1/ai/status",
		EndpointBrokerStatus: "/api/v1/broker/status",
		EndpointDerived:      "/api/v1/analytics/derived",
	}
}

// readingItem is the tolerant wire shape of one upstream reading.
// Fields may be absent; absent numerics default to 0 and the
// timestamp falls back from timestamp to created_at to receipt time.
type readingItem struct {
	SensorID  string                 `json:"sensor_id"`
	Value     *float64               `json:"value"`
	Unit      string                 `json:"unit"`
	Timestamp *time.Time             `json:"timestamp"`
	CreatedAt *time.Time             `json:"created_at"`
	Metadata  map[string]interface{} `json:"metadata"`
}

// readingsPage is the paginated recent-readings response.
type readingsPage struct {
	Items []readingItem `json:"items"`
	Total int           `json:"total"`
}

// predictionItem tolerates the score|confidence and
// prediction|status field aliases seen across source versions.
type predictionItem struct {
	Timestamp  *time.Time `json:"timestamp"`
	CreatedAt  *time.Time `json:"created_at"`
	Score      *float64   `json:"score"`
	Confidence *float64   `json:"confidence"`
	Prediction string     `json:"prediction"`
	Status     string     `json:"status"`
}

type predictionsPage struct {
	Items []predictionItem `json:"items"`
}

// SubsystemStatus is the small status object returned by the AI and
// broker status endpoints.
type SubsystemStatus struct {
	Status    string `json:"status,omitempty"`
	Connected *bool  `json:"connected,omitempty"`
}

// Available reports whether the subsystem considers itself healthy.
func (s SubsystemStatus) Available() bool {
	if s.Connected != nil {
		return *s.Connected
	}

	switch s.Status {
	case "ok", "online", "healthy", "normal":
		return true
	default:
		return false
	}
}

// decodeReadings converts a readings payload into raw readings.
// A malformed payload decodes to nil and is logged, never fatal.
func decodeReadings(data json.RawMessage, now time.Time) []models.RawReading {
	var page readingsPage
	if err := json.Unmarshal(data, &page); err != nil {
		log.Printf("Malformed readings payload, treating as empty: %v", err)
		return nil
	}

	readings := make([]models.RawReading, 0, len(page.Items))

	for _, item := range page.Items {
		var value float64
		if item.Value != nil {
			value = *item.Value
		}

		ts := now
		if item.Timestamp != nil {
			ts = *item.Timestamp
		} else if item.CreatedAt != nil {
			ts = *item.CreatedAt
		}

		readings = append(readings, models.RawReading{
			SensorID:  item.SensorID,
			Value:     value,
			Unit:      item.Unit,
			Timestamp: ts,
			Metadata:  stringifyMetadata(item.Metadata),
		})
	}

	return readings
}

func decodePredictions(data json.RawMessage, now time.Time) []models.Prediction {
	var page predictionsPage
	if err := json.Unmarshal(data, &page); err != nil {
		log.Printf("Malformed predictions payload, treating as empty: %v", err)
		return nil
	}

	predictions := make([]models.Prediction, 0, len(page.Items))

	for _, item := range page.Items {
		var score float64

		switch {
		case item.Score != nil:
			score = *item.Score
		case item.Confidence != nil:
			score = *item.Confidence
		}

		var confidence float64
		if item.Confidence != nil {
			confidence = *item.Confidence
		}

		ts := now
		if item.Timestamp != nil {
			ts = *item.Timestamp
		} else if item.CreatedAt != nil {
			ts = *item.CreatedAt
		}

		status := models.Status(item.Status)
		if item.Status == "" {
			status = models.StatusNormal
		}

		prediction := item.Prediction
		if prediction == "" {
			prediction = string(status)
		}

		predictions = append(predictions, models.Prediction{
			Timestamp:  ts,
			Score:      score,
			Confidence: confidence,
			Prediction: prediction,
			Status:     status,
		})
	}

	return predictions
}

// stringifyMetadata keeps the string-valued metadata fields the alias
// resolver cares about and drops the rest.
func stringifyMetadata(raw map[string]interface{}) map[string]string {
	if len(raw) == 0 {
		return nil
	}

	out := make(map[string]string, len(raw))

	for key, value := range raw {
		if s, ok := value.(string); ok {
			out[key] = s
		}
	}

	if len(out) == 0 {
		return nil
	}

	return out
}
