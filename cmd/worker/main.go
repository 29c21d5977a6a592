package main

import (
	"context"
	"time"

	"exsolver/internal/activities"
	"exsolver/internal/config"
	"exsolver/internal/corpus"
	"exsolver/internal/logging"
	"exsolver/internal/metrics"
	"exsolver/internal/resolver"
	"exsolver/internal/storage"
	"exsolver/internal/workflows"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
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

	c, err := client.Dial(client.Options{HostPort: cfg.TemporalAddress})
	if err != nil {
		log.Fatal("dial temporal", zap.Error(err))
	}
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.New(prometheus.DefaultRegisterer)
	repo := corpus.NewRepository(cfg.ExamplesDir, log, m)
	if err := repo.Reload(ctx); err != nil {
		log.Fatal("load examples", zap.String("dir", cfg.ExamplesDir), zap.Error(err))
	}
	if cfg.WatchExamples {
		wt, err := corpus.NewWatcher(repo, corpus.DefaultDebounce, log)
		if err != nil {
			log.Fatal("watch examples", zap.Error(err))
		}
		if err := wt.Start(ctx); err != nil {
			log.Fatal("watch examples", zap.Error(err))
		}
		defer wt.Stop()
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, 5*time.Second)
	defer dbCancel()
	db, err := storage.NewDB(dbCtx, cfg.PostgresURL)
	if err != nil {
		log.Fatal("connect postgres", zap.Error(err))
	}
	defer db.Close()
	solutions := storage.NewSolutionRepo(db)
	if err := solutions.EnsureSchema(dbCtx); err != nil {
		log.Fatal("ensure schema", zap.Error(err))
	}

	w := worker.New(c, cfg.TemporalTaskQueue, worker.Options{})
	workflows.Register(w)
	activities.Register(w, activities.New(cfg, repo, resolver.New(repo, log, m), solutions, log))

	log.Info("exsolver worker listening",
		zap.String("temporal", cfg.TemporalAddress),
		zap.String("queue", cfg.TemporalTaskQueue),
		zap.Int("examples", repo.Len()))
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatal("run worker", zap.Error(err))
	}
}
