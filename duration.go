package promql

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/promql/internal/lexerql"
)

// ParseDuration parses a PromQL duration like "1h30m".
func ParseDuration(s string) (time.Duration, error) {
	return lexerql.ParseDuration(s)
}

// FormatDuration renders d in the canonical form the printer emits:
// greedy largest-unit-first decomposition into d, h, m, s and ms.
//
// Weeks and years are never emitted. A negative duration, legal only
// after offset, gets a leading minus.
func FormatDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}

	var sb strings.Builder
	if d < 0 {
		sb.WriteByte('-')
		d = -d
	}

	// Sub-millisecond durations are not expressible in PromQL.
	ms := int64(d / time.Millisecond)
	if ms == 0 {
		return "0s"
	}
	for _, unit := range []struct {
		suffix string
		ms     int64
	}{
		{"d", 24 * 60 * 60 * 1000},
		{"h", 60 * 60 * 1000},
		{"m", 60 * 1000},
		{"s", 1000},
		{"ms", 1},
	} {
		if n := ms / unit.ms; n > 0 {
			sb.WriteString(strconv.FormatInt(n, 10))
			sb.WriteString(unit.suffix)
			ms -= n * unit.ms
		}
	}
	return sb.String()
}
