package server

import "github.com/duskkv/duskkv/internal/resp"

// handleDel implements DEL k+.
func handleDel(ctx *Context) resp.Value {
	if ctx.NArgs() < 1 {
		return wrongArgs("del")
	}
	return resp.MakeInteger(ctx.Store.Del(argStrings(ctx.Args[1:])))
}

// handleExists implements EXISTS k+.
func handleExists(ctx *Context) resp.Value {
	if ctx.NArgs() < 1 {
		return wrongArgs("exists")
	}
	return resp.MakeInteger(ctx.Store.Exists(argStrings(ctx.Args[1:])))
}

// handleExpire implements EXPIRE k seconds.
func handleExpire(ctx *Context) resp.Value {
	if ctx.NArgs() != 2 {
		return wrongArgs("expire")
	}
	seconds, ok := parseInt64Arg(ctx.Arg(1))
	if !ok {
		return resp.MakeError("value is not an integer or out of range")
	}
	return resp.MakeInteger(ctx.Store.Expire(string(ctx.Arg(0)), seconds))
}

// handleTTL implements TTL k.
func handleTTL(ctx *Context) resp.Value {
	if ctx.NArgs() != 1 {
		return wrongArgs("ttl")
	}
	return resp.MakeInteger(ctx.Store.TTL(string(ctx.Arg(0))))
}

// handleKeys implements KEYS pattern.
func handleKeys(ctx *Context) resp.Value {
	if ctx.NArgs() != 1 {
		return wrongArgs("keys")
	}
	keys := ctx.Store.Keys(string(ctx.Arg(0)))
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = []byte(k)
	}
	return bulkArray(out)
}
