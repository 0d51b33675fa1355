package server

import (
	"strings"

	"github.com/duskkv/duskkv/internal/resp"
	"github.com/duskkv/duskkv/internal/store"
)

// handleZAdd implements ZADD k (score member)+.
func handleZAdd(ctx *Context) resp.Value {
	if ctx.NArgs() < 1 {
		return wrongArgs("zadd")
	}

	params := ctx.Args[2:]
	if len(params) == 0 || len(params)%2 != 0 {
		return wrongArgs("zadd")
	}

	members := make([]store.ZMember, 0, len(params)/2)
	for i := 0; i < len(params); i += 2 {
		score, ok := parseFloat64Arg(params[i].Bytes())
		if !ok {
			return resp.MakeError("value is not a valid float")
		}
		members = append(members, store.ZMember{Member: params[i+1].Bytes(), Score: score})
	}

	n, err := ctx.Store.ZAdd(string(ctx.Arg(0)), members)
	if err != nil {
		return storeErr(err)
	}
	return resp.MakeInteger(n)
}

// handleZRange implements ZRANGE k start stop [WITHSCORES].
func handleZRange(ctx *Context) resp.Value {
	if ctx.NArgs() != 3 && ctx.NArgs() != 4 {
		return wrongArgs("zrange")
	}

	withScores := false
	if ctx.NArgs() == 4 {
		if strings.ToUpper(string(ctx.Arg(3))) != "WITHSCORES" {
			return resp.MakeError("syntax error")
		}
		withScores = true
	}

	start, ok := parseInt64Arg(ctx.Arg(1))
	if !ok {
		return resp.MakeError("value is not an integer or out of range")
	}
	stop, ok := parseInt64Arg(ctx.Arg(2))
	if !ok {
		return resp.MakeError("value is not an integer or out of range")
	}

	members, err := ctx.Store.ZRange(string(ctx.Arg(0)), start, stop)
	if err != nil {
		return storeErr(err)
	}

	if !withScores {
		out := make([]resp.Value, len(members))
		for i, m := range members {
			out[i] = resp.MakeBulkString(m.Member)
		}
		return resp.MakeArray(out)
	}

	out := make([]resp.Value, 0, len(members)*2)
	for _, m := range members {
		out = append(out,
			resp.MakeBulkString(m.Member),
			resp.MakeBulkStringFromString(store.FormatScore(m.Score)),
		)
	}
	return resp.MakeArray(out)
}

// handleZRank implements ZRANK k m.
func handleZRank(ctx *Context) resp.Value {
	if ctx.NArgs() != 2 {
		return wrongArgs("zrank")
	}
	rank, ok, err := ctx.Store.ZRank(string(ctx.Arg(0)), ctx.Arg(1))
	if err != nil {
		return storeErr(err)
	}
	if !ok {
		return resp.MakeNilBulkString()
	}
	return resp.MakeInteger(rank)
}

// handleZRem implements ZREM k m+.
func handleZRem(ctx *Context) resp.Value {
	if ctx.NArgs() < 2 {
		return wrongArgs("zrem")
	}
	n, err := ctx.Store.ZRem(string(ctx.Arg(0)), rawBytes(ctx.Args[2:]))
	if err != nil {
		return storeErr(err)
	}
	return resp.MakeInteger(n)
}

// handleZScore implements ZSCORE k m.
func handleZScore(ctx *Context) resp.Value {
	if ctx.NArgs() != 2 {
		return wrongArgs("zscore")
	}
	score, ok, err := ctx.Store.ZScore(string(ctx.Arg(0)), ctx.Arg(1))
	if err != nil {
		return storeErr(err)
	}
	if !ok {
		return resp.MakeNilBulkString()
	}
	return resp.MakeBulkStringFromString(store.FormatScore(score))
}

// handleZCard implements ZCARD k.
func handleZCard(ctx *Context) resp.Value {
	if ctx.NArgs() != 1 {
		return wrongArgs("zcard")
	}
	n, err := ctx.Store.ZCard(string(ctx.Arg(0)))
	if err != nil {
		return storeErr(err)
	}
	return resp.MakeInteger(n)
}
