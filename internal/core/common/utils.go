package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseJSON unmarshals the first JSON object found in a provider response
// into T. Providers wrap their JSON in markdown fences or prose often enough
// that trimming to the outermost braces is required before trusting the body;
// anything that still fails to decode is that call's failure, never the
// job's.
func ParseJSON[T any](response string) (T, error) {
	var zero T

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end < start {
		return zero, fmt.Errorf("no JSON object found in response")
	}

	var result T
	if err := json.Unmarshal([]byte(response[start:end+1]), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return result, nil
}
