package server

import (
	"github.com/duskkv/duskkv/internal/resp"
	"github.com/duskkv/duskkv/internal/store"
)

// Context carries one command invocation's arguments (args[0] is the
// command name as the client sent it; args[1:] are its parameters) plus
// the Engine it runs against.
type Context struct {
	Args  []resp.Value
	Store store.Engine
}

// Arg returns the raw bytes of the i-th argument after the command
// name (Arg(0) is the first parameter), or nil if there aren't that
// many.
func (c *Context) Arg(i int) []byte {
	if i+1 >= len(c.Args) {
		return nil
	}
	return c.Args[i+1].Bytes()
}

// NArgs reports how many parameters follow the command name.
func (c *Context) NArgs() int {
	return len(c.Args) - 1
}

// Command is anything that can execute against a Context and produce a
// reply Value.
type Command interface {
	Execute(ctx *Context) resp.Value
}

// CommandFunc adapts a plain function to the Command interface.
type CommandFunc func(ctx *Context) resp.Value

func (c CommandFunc) Execute(ctx *Context) resp.Value {
	return c(ctx)
}
