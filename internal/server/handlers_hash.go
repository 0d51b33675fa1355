package server

import "github.com/duskkv/duskkv/internal/resp"

// handleHSet implements HSET k f v.
func handleHSet(ctx *Context) resp.Value {
	if ctx.NArgs() != 3 {
		return wrongArgs("hset")
	}
	isNew, err := ctx.Store.HSet(string(ctx.Arg(0)), ctx.Arg(1), ctx.Arg(2))
	if err != nil {
		return storeErr(err)
	}
	if isNew {
		return resp.MakeInteger(1)
	}
	return resp.MakeInteger(0)
}

// handleHGet implements HGET k f.
func handleHGet(ctx *Context) resp.Value {
	if ctx.NArgs() != 2 {
		return wrongArgs("hget")
	}
	v, ok, err := ctx.Store.HGet(string(ctx.Arg(0)), ctx.Arg(1))
	if err != nil {
		return storeErr(err)
	}
	if !ok {
		return resp.MakeNilBulkString()
	}
	return resp.MakeBulkString(v)
}

// handleHDel implements HDEL k f+.
func handleHDel(ctx *Context) resp.Value {
	if ctx.NArgs() < 2 {
		return wrongArgs("hdel")
	}
	n, err := ctx.Store.HDel(string(ctx.Arg(0)), rawBytes(ctx.Args[2:]))
	if err != nil {
		return storeErr(err)
	}
	return resp.MakeInteger(n)
}

// handleHExists implements HEXISTS k f.
func handleHExists(ctx *Context) resp.Value {
	if ctx.NArgs() != 2 {
		return wrongArgs("hexists")
	}
	ok, err := ctx.Store.HExists(string(ctx.Arg(0)), ctx.Arg(1))
	if err != nil {
		return storeErr(err)
	}
	if ok {
		return resp.MakeInteger(1)
	}
	return resp.MakeInteger(0)
}

// handleHGetAll implements HGETALL k.
func handleHGetAll(ctx *Context) resp.Value {
	if ctx.NArgs() != 1 {
		return wrongArgs("hgetall")
	}
	vals, err := ctx.Store.HGetAll(string(ctx.Arg(0)))
	if err != nil {
		return storeErr(err)
	}
	return bulkArray(vals)
}

// handleHKeys implements HKEYS k.
func handleHKeys(ctx *Context) resp.Value {
	if ctx.NArgs() != 1 {
		return wrongArgs("hkeys")
	}
	vals, err := ctx.Store.HKeys(string(ctx.Arg(0)))
	if err != nil {
		return storeErr(err)
	}
	return bulkArray(vals)
}

// handleHVals implements HVALS k.
func handleHVals(ctx *Context) resp.Value {
	if ctx.NArgs() != 1 {
		return wrongArgs("hvals")
	}
	vals, err := ctx.Store.HVals(string(ctx.Arg(0)))
	if err != nil {
		return storeErr(err)
	}
	return bulkArray(vals)
}

// handleHLen implements HLEN k.
func handleHLen(ctx *Context) resp.Value {
	if ctx.NArgs() != 1 {
		return wrongArgs("hlen")
	}
	n, err := ctx.Store.HLen(string(ctx.Arg(0)))
	if err != nil {
		return storeErr(err)
	}
	return resp.MakeInteger(n)
}
