// Command server runs the duskkv TCP server: load config, build the
// store engine and logger, accept connections, and drain them on
// SIGINT/SIGTERM, adapted from the teacher's cmd/server/main.go.
package main

import (
	"context"
	"errors"
	"net"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/duskkv/duskkv/internal/config"
	"github.com/duskkv/duskkv/internal/logger"
	"github.com/duskkv/duskkv/internal/server"
	"github.com/duskkv/duskkv/internal/store"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync() //nolint:errcheck

	log.Info("duskkv starting",
		zap.String("port", cfg.Server.Port),
		zap.Uint("shards", cfg.Storage.Shards),
	)

	engine := buildEngine(cfg, log)

	config.Watch(func(fresh *config.Config) {
		log.SetLevel(fresh.Log.Level)
		log.Info("config reloaded", zap.String("log_level", fresh.Log.Level))
	})

	address := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		log.Fatal("listener error", zap.Error(err))
	}
	log.Info("listening on", zap.String("address", address))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup

	go acceptLoop(listener, engine, log, &wg)

	<-ctx.Done()
	log.Info("shutting down")

	listener.Close() //nolint:errcheck
	engine.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("all connections closed gracefully")
	case <-shutdownCtx.Done():
		log.Warn("shutdown timed out, forcing exit", zap.Duration("timeout", shutdownTimeout))
	}

	log.Info("duskkv stopped")
}

// buildEngine selects the store.Engine implementation per cfg.Storage.Shards:
// 1 (or 0) selects the coarse-mutex Store, anything else must be a
// power of two and selects ShardedStore.
func buildEngine(cfg *config.Config, log *logger.Logger) *server.Engine {
	var eng store.Engine
	if cfg.Storage.Shards <= 1 {
		eng = store.NewStore()
	} else {
		sharded, err := store.NewShardedStore(cfg.Storage.Shards)
		if err != nil {
			log.Fatal("invalid shard count", zap.Uint("shards", cfg.Storage.Shards), zap.Error(err))
		}
		eng = sharded
	}
	return server.NewEngine(eng, cfg, log.Logger)
}

func acceptLoop(listener net.Listener, engine *server.Engine, log *logger.Logger, wg *sync.WaitGroup) {
	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			log.Error("accept error", zap.Error(err))
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			serveConn(conn, engine, log)
		}()
	}
}

func serveConn(conn net.Conn, engine *server.Engine, log *logger.Logger) {
	addr := conn.RemoteAddr().String()
	if log.Core().Enabled(zap.DebugLevel) {
		log.Debug("client connected", zap.String("addr", addr))
	}

	peer := server.NewPeer(conn)
	defer func() {
		peer.Close() //nolint:errcheck
		if log.Core().Enabled(zap.DebugLevel) {
			log.Debug("client disconnected", zap.String("addr", addr))
		}
	}()

	if err := peer.Serve(engine); err != nil {
		log.Debug("connection ended", zap.String("addr", addr), zap.Error(err))
	}
}
