package server

import (
	"strings"
	"time"

	"github.com/duskkv/duskkv/internal/resp"
	"github.com/duskkv/duskkv/internal/store"
)

// handleGet implements GET k.
func handleGet(ctx *Context) resp.Value {
	if ctx.NArgs() != 1 {
		return wrongArgs("get")
	}

	v, ok, err := ctx.Store.Get(string(ctx.Arg(0)))
	if err != nil {
		return storeErr(err)
	}
	if !ok {
		return resp.MakeNilBulkString()
	}
	return resp.MakeBulkString(v)
}

// handleSet implements SET k v [EX s | PX ms | EXAT ts | PXAT ts-ms]
// [NX | XX] [KEEPTTL]. Supplements spec.md's EX/PX-only grammar with
// the teacher's NX/XX/KEEPTTL/EXAT/PXAT options (see SPEC_FULL.md §10);
// EX/PX themselves behave exactly as spec.md §4.2.1 requires.
func handleSet(ctx *Context) resp.Value {
	if ctx.NArgs() < 2 {
		return wrongArgs("set")
	}

	key := string(ctx.Arg(0))
	value := ctx.Arg(1)

	opts, ok, errVal := parseSetOptions(ctx.Args[3:])
	if !ok {
		return errVal
	}

	changed, err := ctx.Store.Set(key, value, opts)
	if err != nil {
		return storeErr(err)
	}
	if !changed {
		return resp.MakeNilBulkString()
	}
	return resp.MakeSimpleString("OK")
}

// parseSetOptions parses the trailing option tokens of SET. It returns
// ok=false with the reply to send straight back on any syntax problem.
func parseSetOptions(tokens []resp.Value) (store.SetOptions, bool, resp.Value) {
	var opts store.SetOptions
	ttlSpecified := false

	for i := 0; i < len(tokens); i++ {
		tok := strings.ToUpper(string(tokens[i].Bytes()))
		switch tok {
		case "NX":
			if opts.XX {
				return opts, false, resp.MakeError("syntax error")
			}
			opts.NX = true
		case "XX":
			if opts.NX {
				return opts, false, resp.MakeError("syntax error")
			}
			opts.XX = true
		case "KEEPTTL":
			if ttlSpecified {
				return opts, false, resp.MakeError("syntax error")
			}
			ttlSpecified = true
			opts.KeepTTL = true
		case "EX", "PX", "EXAT", "PXAT":
			if ttlSpecified {
				return opts, false, resp.MakeError("syntax error")
			}
			if i+1 >= len(tokens) {
				return opts, false, resp.MakeError("syntax error")
			}
			n, ok := parseInt64Arg(tokens[i+1].Bytes())
			if !ok {
				return opts, false, resp.MakeError("value is not an integer or out of range")
			}
			i++

			ttlSpecified = true
			ttl, ok := resolveTTL(tok, n)
			if !ok {
				return opts, false, resp.MakeError("invalid expire time in set")
			}
			opts.TTL = ttl
		default:
			return opts, false, resp.MakeError("syntax error")
		}
	}

	return opts, true, resp.Value{}
}

// resolveTTL converts an EX/PX/EXAT/PXAT argument into a duration from
// now. EX/PX reject non-positive values outright (spec.md
// invalidExpireTime); EXAT/PXAT are absolute deadlines and are rejected
// only if already in the past.
func resolveTTL(option string, n int64) (time.Duration, bool) {
	switch option {
	case "EX":
		if n <= 0 {
			return 0, false
		}
		return time.Duration(n) * time.Second, true
	case "PX":
		if n <= 0 {
			return 0, false
		}
		return time.Duration(n) * time.Millisecond, true
	case "EXAT":
		d := time.Until(time.Unix(n, 0))
		if d <= 0 {
			return 0, false
		}
		return d, true
	case "PXAT":
		d := time.Until(time.UnixMilli(n))
		if d <= 0 {
			return 0, false
		}
		return d, true
	}
	return 0, false
}

// handleMSet implements MSET (k v)+.
func handleMSet(ctx *Context) resp.Value {
	params := ctx.Args[1:]
	if len(params) == 0 || len(params)%2 != 0 {
		return wrongArgs("mset")
	}

	pairs := make([][2][]byte, 0, len(params)/2)
	for i := 0; i < len(params); i += 2 {
		pairs = append(pairs, [2][]byte{params[i].Bytes(), params[i+1].Bytes()})
	}

	if err := ctx.Store.MSet(pairs); err != nil {
		return storeErr(err)
	}
	return resp.MakeSimpleString("OK")
}

// handleMGet implements MGET k+.
func handleMGet(ctx *Context) resp.Value {
	if ctx.NArgs() < 1 {
		return wrongArgs("mget")
	}

	keys := argStrings(ctx.Args[1:])
	values, found := ctx.Store.MGet(keys)
	return sparseBulkArray(values, found)
}

// handleIncr implements INCR k.
func handleIncr(ctx *Context) resp.Value { return incrByN(ctx, "incr", 1, true) }

// handleDecr implements DECR k.
func handleDecr(ctx *Context) resp.Value { return incrByN(ctx, "decr", -1, true) }

// handleIncrBy implements INCRBY k n.
func handleIncrBy(ctx *Context) resp.Value { return incrByN(ctx, "incrby", 1, false) }

// handleDecrBy implements DECRBY k n.
func handleDecrBy(ctx *Context) resp.Value { return incrByN(ctx, "decrby", -1, false) }

// incrByN implements the shared INCR/DECR/INCRBY/DECRBY shape: sign
// flips the delta for the DECR family, fixedOne skips parsing a count
// argument (plain INCR/DECR always move by 1).
func incrByN(ctx *Context, name string, sign int64, fixedOne bool) resp.Value {
	if fixedOne {
		if ctx.NArgs() != 1 {
			return wrongArgs(name)
		}
		n, err := ctx.Store.IncrBy(string(ctx.Arg(0)), sign)
		if err != nil {
			return storeErr(err)
		}
		return resp.MakeInteger(n)
	}

	if ctx.NArgs() != 2 {
		return wrongArgs(name)
	}
	delta, ok := parseInt64Arg(ctx.Arg(1))
	if !ok {
		return resp.MakeError("value is not an integer or out of range")
	}

	n, err := ctx.Store.IncrBy(string(ctx.Arg(0)), sign*delta)
	if err != nil {
		return storeErr(err)
	}
	return resp.MakeInteger(n)
}

// argStrings converts a slice of bulk-string Values to plain strings.
func argStrings(vals []resp.Value) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v.Bytes())
	}
	return out
}
