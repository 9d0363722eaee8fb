package controls

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
)

// parseNumbers converts user-typed text to numbers. Entries that are empty or do not parse to a finite number are
// rejected.
func parseNumbers(values ...string) ([]float32, error) {
	out := make([]float32, len(values))
	for i, raw := range values {
		s := strings.TrimSpace(raw)
		if s == "" {
			return nil, fmt.Errorf("value %d is empty", i)
		}
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		v := float32(f)
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return nil, fmt.Errorf("value %d is not finite", i)
		}
		out[i] = v
	}
	return out, nil
}
