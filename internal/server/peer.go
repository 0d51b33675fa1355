package server

import (
	"errors"
	"net"
	"strings"

	"github.com/duskkv/duskkv/internal/resp"
)

// Peer is a single connection's dispatcher state: the socket, a reply
// encoder, and the growable inbound byte buffer spec.md §4.3 requires
// the dispatcher to own. Generalized from the teacher's Peer, which
// wrapped a blocking resp.Decoder directly over the socket; here the
// buffer is explicit so a ProtocolError can reset it without tearing
// down the connection, and Incomplete genuinely waits for the next
// conn.Read instead of blocking inside the codec.
type Peer struct {
	conn    net.Conn
	decoder resp.CommandDecoder
	writer  resp.ReplyWriter

	buf     []byte
	readBuf [readChunkSize]byte
}

const readChunkSize = 4096

// NewPeer wraps conn with a fresh Peer ready to serve commands.
func NewPeer(conn net.Conn) *Peer {
	return &Peer{
		conn:    conn,
		decoder: resp.NewDecoder(),
		writer:  resp.NewEncoder(conn),
	}
}

// Close closes the underlying connection.
func (p *Peer) Close() error {
	return p.conn.Close()
}

// Serve runs the read-decode-dispatch-encode loop for this connection
// until the peer disconnects, a protocol error resets and then a read
// fails, or QUIT is served. It implements spec.md §4.3 verbatim: append
// inbound bytes, then repeatedly decode; Incomplete waits for the next
// read; ProtocolError sends one error reply and discards the buffer;
// Command routes and replies. After QUIT's reply flushes, Serve returns
// nil; closing the connection is left to the caller (see Close).
func (p *Peer) Serve(engine *Engine) error {
	for {
		n, err := p.conn.Read(p.readBuf[:])
		if n > 0 {
			p.buf = append(p.buf, p.readBuf[:n]...)
			if quit, drainErr := p.drain(engine); drainErr != nil {
				return drainErr
			} else if quit {
				return nil
			}
		}
		if err != nil {
			return err
		}
	}
}

// drain decodes and dispatches every complete command currently sitting
// in the buffer, reports whether QUIT was seen, and flushes once the
// buffer runs dry (Incomplete) or the connection is closing.
func (p *Peer) drain(engine *Engine) (quit bool, err error) {
	for {
		cmdValue, consumed, decodeErr := p.decoder.DecodeCommand(p.buf)

		var protoErr *resp.ProtocolError
		switch {
		case errors.Is(decodeErr, resp.ErrIncomplete):
			return false, p.writer.Flush()

		case errors.As(decodeErr, &protoErr):
			if writeErr := p.writer.Write(resp.MakeError(protoErr.Msg)); writeErr != nil {
				return false, writeErr
			}
			p.buf = p.buf[:0]
			return false, p.writer.Flush()

		case decodeErr != nil:
			return false, decodeErr
		}

		p.buf = p.buf[consumed:]
		if len(p.buf) == 0 {
			p.buf = nil // release the backing array once the buffer is empty
		}

		reply, name := p.execute(engine, cmdValue)
		if err := p.writer.Write(reply); err != nil {
			return false, err
		}

		if IsQuit(name) {
			if err := p.writer.Flush(); err != nil {
				return false, err
			}
			return true, nil
		}
	}
}

// execute validates cmdValue's shape and routes it to engine, returning
// the reply and the uppercased command name.
func (p *Peer) execute(engine *Engine, cmdValue resp.Value) (resp.Value, string) {
	if cmdValue.Type != resp.TypeArray || len(cmdValue.Array) == 0 {
		return resp.MakeError("empty command"), ""
	}

	name := string(cmdValue.Array[0].Bytes())
	return engine.Execute(name, cmdValue.Array), strings.ToUpper(name)
}
