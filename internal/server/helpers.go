package server

import (
	"errors"
	"strconv"

	"github.com/duskkv/duskkv/internal/resp"
	"github.com/duskkv/duskkv/internal/store"
)

// storeErr maps a store package sentinel error to its wire-protocol
// reply, per spec.md §7's error taxonomy.
func storeErr(err error) resp.Value {
	switch {
	case errors.Is(err, store.ErrWrongType):
		return resp.MakeError("wrong type")
	case errors.Is(err, store.ErrNotInteger):
		return resp.MakeError("value is not an integer or out of range")
	case errors.Is(err, store.ErrNotFloat):
		return resp.MakeError("value is not a valid float")
	case errors.Is(err, store.ErrSyntax):
		return resp.MakeError("syntax error")
	case errors.Is(err, store.ErrInvalidExpire):
		return resp.MakeError("invalid expire time in set")
	default:
		return resp.MakeError(err.Error())
	}
}

// wrongArgs builds the standard arity error for a lowercase command
// name.
func wrongArgs(name string) resp.Value {
	return resp.MakeErrorWrongNumberOfArguments(name)
}

// parseInt64Arg parses one command argument as a signed 64-bit decimal,
// reporting ok=false on failure; callers reply with the nonInteger wire
// error.
func parseInt64Arg(b []byte) (int64, bool) {
	n, err := strconv.ParseInt(string(b), 10, 64)
	return n, err == nil
}

// parseFloat64Arg parses one command argument as a float64, rejecting
// NaN per spec.md §4.2.5 (ZADD "not a valid float" on NaN).
func parseFloat64Arg(b []byte) (float64, bool) {
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return 0, false
	}
	if f != f { // NaN
		return 0, false
	}
	return f, true
}

// bulkArray wraps a dense list of raw byte slices (every entry
// genuinely present, e.g. LRANGE/SMEMBERS/HVALS/KEYS) into an array
// reply. It never emits a null element: a nil slice here means a
// stored empty string (internal/store's copy-on-write helpers collapse
// append([]byte(nil), ""...) to nil), not an absent value, so it's
// always encoded as an empty bulk string rather than sniffed into
// $-1\r\n. Callers with a sparse result (some keys absent, e.g. MGET)
// must track presence explicitly instead of reusing this helper.
func bulkArray(vals [][]byte) resp.Value {
	out := make([]resp.Value, len(vals))
	for i, v := range vals {
		out[i] = resp.MakeBulkString(v)
	}
	return resp.MakeArray(out)
}

// sparseBulkArray wraps vals into an array reply where present[i] ==
// false renders as a null bulk string regardless of vals[i]'s
// nilness, and present[i] == true always renders as a bulk string
// (empty or not). Used by MGET, the one sparse per-key result in this
// command set.
func sparseBulkArray(vals [][]byte, present []bool) resp.Value {
	out := make([]resp.Value, len(vals))
	for i, v := range vals {
		if !present[i] {
			out[i] = resp.MakeNilBulkString()
			continue
		}
		out[i] = resp.MakeBulkString(v)
	}
	return resp.MakeArray(out)
}
