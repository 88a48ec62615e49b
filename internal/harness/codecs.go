package harness

import (
	"strconv"
	"strings"
)

var intCodec = codec[int64]{
	parse: func(s string) (int64, error) {
		return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	},
	format: func(n int64) string {
		return strconv.FormatInt(n, 10)
	},
}

// floatCodec formats with the shortest representation that round-trips.
var floatCodec = codec[float64]{
	parse: func(s string) (float64, error) {
		return strconv.ParseFloat(strings.TrimSpace(s), 64)
	},
	format: func(f float64) string {
		return strconv.FormatFloat(f, 'g', -1, 64)
	},
}
