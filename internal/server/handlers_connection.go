package server

import (
	"strings"

	"github.com/duskkv/duskkv/internal/resp"
)

// handlePing implements PING [message]: bare PING replies +PONG; with a
// message it echoes it back as a bulk string.
func handlePing(ctx *Context) resp.Value {
	switch ctx.NArgs() {
	case 0:
		return resp.MakeSimpleString("PONG")
	case 1:
		return resp.MakeBulkString(ctx.Arg(0))
	default:
		return wrongArgs("ping")
	}
}

// handleQuit implements QUIT: the dispatcher (Peer) inspects the
// command name itself to decide whether to close after this reply
// flushes; the handler only needs to produce the reply.
func handleQuit(ctx *Context) resp.Value {
	if ctx.NArgs() != 0 {
		return wrongArgs("quit")
	}
	return resp.MakeSimpleString("OK")
}

// handleCommand implements COMMAND, COMMAND COUNT, and COMMAND DOCS
// [name ...].
func handleCommand(ctx *Context) resp.Value {
	if ctx.NArgs() == 0 {
		return getAllCommands()
	}

	sub := strings.ToUpper(string(ctx.Arg(0)))
	switch sub {
	case "COUNT":
		return resp.MakeInteger(int64(len(commandRegistry)))
	case "DOCS":
		return getCommandsDocs(ctx.Args[2:])
	default:
		return wrongArgs("command")
	}
}
