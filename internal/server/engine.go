package server

import (
	"strings"
	"time"

	"github.com/duskkv/duskkv/internal/config"
	"github.com/duskkv/duskkv/internal/resp"
	"github.com/duskkv/duskkv/internal/store"
	"go.uber.org/zap"
)

// Engine is the command dispatcher: a registry of uppercased command
// names to handlers, the shared store.Engine they operate on, and the
// background active-expiration sweep. Generalized from the teacher's
// server.Engine, which only routed GET/SET/DEL/TTL/PERSIST/PING/COMMAND;
// this one routes every command family spec.md defines.
type Engine struct {
	commands map[string]Command
	store    store.Engine
	cfg      *config.Config
	logger   *zap.Logger
	stopGC   chan struct{}
}

// NewEngine builds an Engine wired to s, registers every command, and
// starts the active-expiration sweep if cfg enables it.
func NewEngine(s store.Engine, cfg *config.Config, logger *zap.Logger) *Engine {
	e := &Engine{
		commands: make(map[string]Command),
		store:    s,
		cfg:      cfg,
		logger:   logger,
		stopGC:   make(chan struct{}),
	}
	e.registerCommands()

	if cfg != nil && cfg.GC.Enabled {
		go e.runGCLoop()
	}

	return e
}

func (e *Engine) register(name string, cmd CommandFunc) {
	e.commands[name] = cmd
}

func (e *Engine) registerCommands() {
	e.register("PING", handlePing)
	e.register("QUIT", handleQuit)
	e.register("COMMAND", handleCommand)

	e.register("GET", handleGet)
	e.register("SET", handleSet)
	e.register("MSET", handleMSet)
	e.register("MGET", handleMGet)
	e.register("INCR", handleIncr)
	e.register("DECR", handleDecr)
	e.register("INCRBY", handleIncrBy)
	e.register("DECRBY", handleDecrBy)

	e.register("DEL", handleDel)
	e.register("EXISTS", handleExists)
	e.register("EXPIRE", handleExpire)
	e.register("TTL", handleTTL)
	e.register("KEYS", handleKeys)

	e.register("LPUSH", handleLPush)
	e.register("RPUSH", handleRPush)
	e.register("LLEN", handleLLen)
	e.register("LRANGE", handleLRange)

	e.register("HSET", handleHSet)
	e.register("HGET", handleHGet)
	e.register("HDEL", handleHDel)
	e.register("HEXISTS", handleHExists)
	e.register("HGETALL", handleHGetAll)
	e.register("HKEYS", handleHKeys)
	e.register("HVALS", handleHVals)
	e.register("HLEN", handleHLen)

	e.register("SADD", handleSAdd)
	e.register("SMEMBERS", handleSMembers)
	e.register("SISMEMBER", handleSIsMember)
	e.register("SREM", handleSRem)
	e.register("SCARD", handleSCard)
	e.register("SINTER", handleSInter)
	e.register("SUNION", handleSUnion)

	e.register("ZADD", handleZAdd)
	e.register("ZRANGE", handleZRange)
	e.register("ZRANK", handleZRank)
	e.register("ZREM", handleZRem)
	e.register("ZSCORE", handleZScore)
	e.register("ZCARD", handleZCard)
}

// Execute routes name (original case, used only for the unknown-command
// error) to its handler. args is the full command vector including the
// command name at index 0.
func (e *Engine) Execute(name string, args []resp.Value) resp.Value {
	upper := strings.ToUpper(name)

	cmd, ok := e.commands[upper]
	if !ok {
		return resp.MakeError("unknown command '" + name + "'")
	}

	if e.logger != nil && e.logger.Core().Enabled(zap.DebugLevel) {
		e.logger.Debug("executing command", zap.String("cmd", upper), zap.Int("args", len(args)-1))
	}

	ctx := &Context{Args: args, Store: e.store}
	return cmd.Execute(ctx)
}

// IsQuit reports whether name is the connection-closing command, so the
// dispatcher can request a close-after-flush.
func IsQuit(name string) bool {
	return strings.ToUpper(name) == "QUIT"
}

// runGCLoop periodically samples the expiry table and purges already-
// expired keys, grounded on the teacher's Engine.startGCLoop. Purely an
// optimization over lazy touch-based expiration.
func (e *Engine) runGCLoop() {
	ticker := time.NewTicker(e.cfg.GC.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ratio := e.store.DeleteExpired(e.cfg.GC.SamplesPerCheck)
			if ratio > 0 {
				e.logger.Debug("active expiration sweep", zap.Float64("expired_ratio", ratio))
			}
		case <-e.stopGC:
			return
		}
	}
}

// Shutdown stops the background active-expiration sweep, if running.
func (e *Engine) Shutdown() {
	if e.cfg != nil && e.cfg.GC.Enabled {
		close(e.stopGC)
	}
}
