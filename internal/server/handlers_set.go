package server

import "github.com/duskkv/duskkv/internal/resp"

// handleSAdd implements SADD k m+.
func handleSAdd(ctx *Context) resp.Value {
	if ctx.NArgs() < 2 {
		return wrongArgs("sadd")
	}
	n, err := ctx.Store.SAdd(string(ctx.Arg(0)), rawBytes(ctx.Args[2:]))
	if err != nil {
		return storeErr(err)
	}
	return resp.MakeInteger(n)
}

// handleSMembers implements SMEMBERS k.
func handleSMembers(ctx *Context) resp.Value {
	if ctx.NArgs() != 1 {
		return wrongArgs("smembers")
	}
	vals, err := ctx.Store.SMembers(string(ctx.Arg(0)))
	if err != nil {
		return storeErr(err)
	}
	return bulkArray(vals)
}

// handleSIsMember implements SISMEMBER k m.
func handleSIsMember(ctx *Context) resp.Value {
	if ctx.NArgs() != 2 {
		return wrongArgs("sismember")
	}
	ok, err := ctx.Store.SIsMember(string(ctx.Arg(0)), ctx.Arg(1))
	if err != nil {
		return storeErr(err)
	}
	if ok {
		return resp.MakeInteger(1)
	}
	return resp.MakeInteger(0)
}

// handleSRem implements SREM k m+.
func handleSRem(ctx *Context) resp.Value {
	if ctx.NArgs() < 2 {
		return wrongArgs("srem")
	}
	n, err := ctx.Store.SRem(string(ctx.Arg(0)), rawBytes(ctx.Args[2:]))
	if err != nil {
		return storeErr(err)
	}
	return resp.MakeInteger(n)
}

// handleSCard implements SCARD k.
func handleSCard(ctx *Context) resp.Value {
	if ctx.NArgs() != 1 {
		return wrongArgs("scard")
	}
	n, err := ctx.Store.SCard(string(ctx.Arg(0)))
	if err != nil {
		return storeErr(err)
	}
	return resp.MakeInteger(n)
}

// handleSInter implements SINTER k+.
func handleSInter(ctx *Context) resp.Value {
	if ctx.NArgs() < 1 {
		return wrongArgs("sinter")
	}
	vals, err := ctx.Store.SInter(argStrings(ctx.Args[1:]))
	if err != nil {
		return storeErr(err)
	}
	return bulkArray(vals)
}

// handleSUnion implements SUNION k+.
func handleSUnion(ctx *Context) resp.Value {
	if ctx.NArgs() < 1 {
		return wrongArgs("sunion")
	}
	vals, err := ctx.Store.SUnion(argStrings(ctx.Args[1:]))
	if err != nil {
		return storeErr(err)
	}
	return bulkArray(vals)
}
