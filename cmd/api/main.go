package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"exsolver/internal/api"
	"exsolver/internal/config"
	"exsolver/internal/corpus"
	"exsolver/internal/logging"
	"exsolver/internal/metrics"
	"exsolver/internal/resolver"
	"exsolver/internal/storage"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	tclient "go.temporal.io/sdk/client"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	log, err := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New(prometheus.DefaultRegisterer)
	repo := corpus.NewRepository(cfg.ExamplesDir, log, m)
	if err := repo.Reload(ctx); err != nil {
		log.Fatal("load examples", zap.String("dir", cfg.ExamplesDir), zap.Error(err))
	}
	if cfg.WatchExamples {
		w, err := corpus.NewWatcher(repo, corpus.DefaultDebounce, log)
		if err != nil {
			log.Fatal("watch examples", zap.Error(err))
		}
		if err := w.Start(ctx); err != nil {
			log.Fatal("watch examples", zap.Error(err))
		}
		defer w.Stop()
	}

	deps := api.Deps{
		Corpus:   repo,
		Resolver: resolver.New(repo, log, m),
		Metrics:  promhttp.Handler(),
		Log:      log,
	}
	if db, err := openSolutions(ctx, cfg); err != nil {
		log.Warn("solution store disabled", zap.Error(err))
	} else {
		defer db.Close()
		deps.Solutions = storage.NewSolutionRepo(db)
	}
	if tc, err := tclient.Dial(tclient.Options{HostPort: cfg.TemporalAddress}); err != nil {
		log.Warn("async resolution disabled", zap.String("temporal", cfg.TemporalAddress), zap.Error(err))
	} else {
		defer tc.Close()
		deps.Temporal = tc
	}

	srv := &http.Server{Addr: cfg.APIAddr, Handler: api.NewServer(cfg, deps).Routes()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("exsolver api listening",
		zap.String("addr", cfg.APIAddr),
		zap.Int("examples", repo.Len()),
		zap.Bool("solutions", deps.Solutions != nil),
		zap.Bool("temporal", deps.Temporal != nil))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("serve", zap.Error(err))
	}
}

func openSolutions(ctx context.Context, cfg config.Config) (*storage.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	db, err := storage.NewDB(ctx, cfg.PostgresURL)
	if err != nil {
		return nil, err
	}
	if err := storage.NewSolutionRepo(db).EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
