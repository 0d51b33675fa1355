package server

import "github.com/duskkv/duskkv/internal/resp"

// handleLPush implements LPUSH k v+.
func handleLPush(ctx *Context) resp.Value { return pushValues(ctx, "lpush", true) }

// handleRPush implements RPUSH k v+.
func handleRPush(ctx *Context) resp.Value { return pushValues(ctx, "rpush", false) }

func pushValues(ctx *Context, name string, left bool) resp.Value {
	if ctx.NArgs() < 2 {
		return wrongArgs(name)
	}

	values := rawBytes(ctx.Args[2:])
	var n int64
	var err error
	if left {
		n, err = ctx.Store.LPush(string(ctx.Arg(0)), values)
	} else {
		n, err = ctx.Store.RPush(string(ctx.Arg(0)), values)
	}
	if err != nil {
		return storeErr(err)
	}
	return resp.MakeInteger(n)
}

// handleLLen implements LLEN k.
func handleLLen(ctx *Context) resp.Value {
	if ctx.NArgs() != 1 {
		return wrongArgs("llen")
	}
	n, err := ctx.Store.LLen(string(ctx.Arg(0)))
	if err != nil {
		return storeErr(err)
	}
	return resp.MakeInteger(n)
}

// handleLRange implements LRANGE k start stop.
func handleLRange(ctx *Context) resp.Value {
	if ctx.NArgs() != 3 {
		return wrongArgs("lrange")
	}
	start, ok := parseInt64Arg(ctx.Arg(1))
	if !ok {
		return resp.MakeError("value is not an integer or out of range")
	}
	stop, ok := parseInt64Arg(ctx.Arg(2))
	if !ok {
		return resp.MakeError("value is not an integer or out of range")
	}

	vals, err := ctx.Store.LRange(string(ctx.Arg(0)), start, stop)
	if err != nil {
		return storeErr(err)
	}
	return bulkArray(vals)
}

// rawBytes extracts the raw argument bytes from vals.
func rawBytes(vals []resp.Value) [][]byte {
	out := make([][]byte, len(vals))
	for i, v := range vals {
		out[i] = v.Bytes()
	}
	return out
}
