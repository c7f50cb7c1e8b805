package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yanqian/aqi-analyst/internal/domain/liveaqi"
	apperrors "github.com/yanqian/aqi-analyst/pkg/errors"
)

// Intent tags the kind of analysis requested. Each intent owns one fixed
// template; the payload is substituted in, never interpolated into the
// instructions themselves.
type Intent string

const (
	IntentTrend    Intent = "TREND"
	IntentCompare  Intent = "COMPARE"
	IntentHealth   Intent = "HEALTH"
	IntentForecast Intent = "FORECAST"
	IntentExplain  Intent = "EXPLAIN"
)

// ParseIntent normalizes and validates a raw intent tag.
func ParseIntent(raw string) (Intent, error) {
	intent := Intent(strings.ToUpper(strings.TrimSpace(raw)))
	switch intent {
	case IntentTrend, IntentCompare, IntentHealth, IntentForecast, IntentExplain:
		return intent, nil
	default:
		return "", apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("unknown analysis intent %q", raw), nil)
	}
}

// ForDigest composes the prompt for a dataset-backed intent.
func ForDigest(intent Intent, digest string) (string, error) {
	switch intent {
	case IntentTrend:
		return "You are an environmental data analyst.\n\n" +
			"Analyze the AQI data summary below and identify:\n" +
			"- Overall trend\n" +
			"- Seasonal patterns\n" +
			"- Major pollution spikes\n\n" +
			"Do not provide numeric predictions.\n\n" +
			digest, nil
	case IntentCompare:
		return "Compare AQI across cities in the summary below.\n" +
			"Identify cleaner cities and those with high variability.\n\n" +
			digest, nil
	case IntentForecast:
		return "Based on the AQI trends below, predict the qualitative " +
			"outlook for the next month.\n" +
			"Choose exactly one: IMPROVE, WORSEN, STABLE.\n" +
			"Do not include numeric values.\n\n" +
			digest, nil
	default:
		return "", apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("intent %s does not apply to a dataset summary", intent), nil)
	}
}

// ForRecord composes the prompt for a live-lookup intent.
func ForRecord(intent Intent, record liveaqi.Record) (string, error) {
	current, forecast := recordPayload(record)
	switch intent {
	case IntentExplain:
		return fmt.Sprintf(`You are an environmental analyst.

The following data represents current air pollution conditions and
a short-term forecast from a global monitoring service.

Current air pollution data:
%s

Short-term forecast data:
%s

Your task:
- Explain the current air quality condition
- Indicate whether the trend appears to improve or worsen
- Describe possible health implications
- Provide general precautions

Rules:
- Do NOT mention specific calendar dates
- Do NOT invent numeric AQI values
- Use qualitative language only
- Keep the explanation cautious and concise`, current, forecast), nil
	case IntentHealth:
		return fmt.Sprintf(`You are a public health advisor.

The following data represents current air pollution conditions in %s:
%s

Your task:
- Describe the health implications for the general population
- Call out risks for sensitive groups (children, elderly, respiratory conditions)
- List practical precautions

Rules:
- Respond with bullet points only
- Use qualitative language only, no numeric values
- Do NOT mention specific calendar dates`, record.Location.Name, current), nil
	default:
		return "", apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("intent %s does not apply to a live lookup", intent), nil)
	}
}

// ForCityPair composes the comparison prompt for two live lookups.
func ForCityPair(a, b liveaqi.Record) string {
	currentA, _ := recordPayload(a)
	currentB, _ := recordPayload(b)
	return fmt.Sprintf(`You are an environmental analyst.

Compare the current air quality between two cities.

%s:
%s

%s:
%s

Your task:
- State which city currently has better air quality
- Compare the dominant pollutants
- Note any health-relevant differences

Rules:
- Respond with bullet points only
- Use qualitative language only, no numeric values
- Do NOT mention specific calendar dates`, a.Location.Name, currentA, b.Location.Name, currentB)
}

// recordPayload renders the record's current state and forecast as compact
// JSON blobs for template substitution.
func recordPayload(record liveaqi.Record) (string, string) {
	current := struct {
		AQI        int                       `json:"aqi"`
		Category   liveaqi.Category          `json:"category"`
		Components liveaqi.PollutantSnapshot `json:"components"`
	}{
		AQI:        record.AQI,
		Category:   record.Category,
		Components: record.Components,
	}
	return marshalOr(current, "{}"), marshalOr(record.Forecast, "[]")
}

func marshalOr(v any, fallback string) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fallback
	}
	return string(data)
}
