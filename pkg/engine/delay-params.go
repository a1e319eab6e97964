package engine

import "github.com/valyala/fasthttp"

const delayParamKey = "delay"

// RequestedDelay extracts the requested delay in milliseconds from the query
// arguments, defaulting to 0. The key test compares only the first five
// bytes, so "delayed=7" also sets the delay; this looseness is long-standing
// observable behavior and is pinned by tests. When the key repeats, the last
// occurrence wins. Negative values clamp to 0 so a crafted query can never
// produce a negative wait.
func RequestedDelay(args *fasthttp.Args) int {
	wait := 0
	args.VisitAll(func(key, value []byte) {
		if len(key) >= len(delayParamKey) && string(key[:len(delayParamKey)]) == delayParamKey {
			wait = leadingInt(value)
		}
	})

	if wait < 0 {
		wait = 0
	}
	return wait
}

// leadingInt parses an optional sign followed by leading decimal digits,
// ignoring any trailing garbage. No digits means 0.
func leadingInt(value []byte) int {
	i := 0
	neg := false
	if i < len(value) && (value[i] == '-' || value[i] == '+') {
		neg = value[i] == '-'
		i++
	}

	n := 0
	for ; i < len(value) && value[i] >= '0' && value[i] <= '9'; i++ {
		n = n*10 + int(value[i]-'0')
	}

	if neg {
		return -n
	}
	return n
}
