package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/odyssey-game/server/auth"
	"github.com/odyssey-game/server/config"
	"github.com/odyssey-game/server/server"
	"github.com/odyssey-game/server/store"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to server config")
	listenAddr := flag.String("listen", "", "Override listen address")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalw("load config", "path", *configPath, "err", err)
	}
	if *listenAddr != "" {
		cfg.ListenAddr = *listenAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database open failure aborts the process.
	st, err := store.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalw("open store", "dsn", cfg.DatabaseDSN, "err", err)
	}
	defer st.Close()

	authSvc := auth.NewService(st)
	srv := server.New(ctx, cfg, st, authSvc, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", srv.HandleWebSocket)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	httpSrv := &http.Server{
		Addr:        cfg.ListenAddr,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	start := time.Now()
	log.Infow("server starting", "listen", cfg.ListenAddr, "zones", len(cfg.Zones))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		srv.Run(gctx)
		return nil
	})
	g.Go(func() error {
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				log.Infow("server up", "uptime", time.Since(start).Round(time.Second))
			}
		}
	})
	g.Go(func() error {
		<-gctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalw("server failed", "err", err)
	}
	log.Infow("server stopped", "uptime", time.Since(start).Round(time.Second))
}
