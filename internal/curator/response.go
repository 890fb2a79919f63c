package curator

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// stripFences removes a surrounding markdown code fence, which models emit
// despite being told not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// decodeResults parses a fence-stripped AI response of the shape
// {"results": [...]} into the given slice.
func decodeResults[T any](response string, out *[]T) error {
	var envelope struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal([]byte(stripFences(response)), &envelope); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	if envelope.Results == nil {
		return fmt.Errorf("response has no results field")
	}
	if err := json.Unmarshal(envelope.Results, out); err != nil {
		return fmt.Errorf("parse results: %w", err)
	}
	return nil
}

// looseInt tolerates the score shapes models actually produce: numbers,
// floats, and quoted numbers. Anything else decodes to the neutral 5.
type looseInt int

func (n *looseInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(strings.Trim(string(b), `"`))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*n = 5
		return nil
	}
	*n = looseInt(f)
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
