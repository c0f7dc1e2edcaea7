package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"internmatch-engine/internal/catalog"
	"internmatch-engine/internal/config"
	"internmatch-engine/internal/events"
	"internmatch-engine/internal/httpapi"
	"internmatch-engine/internal/logger"
	"internmatch-engine/internal/matching"
	"internmatch-engine/internal/scheduler"
	"internmatch-engine/internal/secrets"
	"internmatch-engine/internal/service"
	"internmatch-engine/internal/store"
)

func main() {
	os.Exit(start(os.Args[1:]))
}

// start wires the process and returns its exit code. Everything that must be
// released on the way out is deferred here so failures still unlock the data
// dir and flush the logger.
func start(args []string) int {
	fs := flag.NewFlagSet("engine", flag.ContinueOnError)
	seedDemo := fs.Bool("seed-demo", false, "insert a small demo catalog, students and listings, then keep serving")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if err := config.LoadDotEnv(".env", ".env.local"); err != nil {
		log.Printf("load .env: %v", err)
		return 1
	}

	// Data dir: env wins so a wrapper process can pass one in.
	dataDir := os.Getenv("INTERNMATCH_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	userCfgPath, err := config.EnsureUserConfig(dataDir, filepath.Join("config", "config.yml"))
	if err != nil {
		log.Printf("config bootstrap failed: %v", err)
		return 1
	}

	loadCfg := func() (config.Config, config.Validation, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, config.Validation{}, err
		}
		config.ApplyEnv(&cfg)
		cfg.App.DataDir = dataDir
		cfg, vr := config.NormalizeAndValidate(cfg)
		return cfg, vr, nil
	}
	cfg, vr, err := loadCfg()
	if err != nil {
		log.Printf("config load failed (%s): %v", userCfgPath, err)
		return 1
	}

	lg, err := logger.New(cfg.App.LogMode, cfg.App.LogLevel)
	if err != nil {
		log.Printf("logger: %v", err)
		return 1
	}
	defer lg.Sync()

	for _, w := range vr.Warnings {
		lg.Warn("config warning", "detail", w)
	}
	if !vr.OK() {
		lg.Error("config invalid", "path", userCfgPath, "errors", vr.Errors)
		return 1
	}

	var cfgVal atomic.Value // stores config.Config
	cfgVal.Store(cfg)

	lock := flock.New(filepath.Join(dataDir, ".engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		lg.Error("data dir lock", "error", err)
		return 1
	}
	if !locked {
		lg.Error("another engine is already using this data dir", "data_dir", dataDir)
		return 1
	}
	defer lock.Unlock()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, &cfgVal, lg, *seedDemo); err != nil {
		lg.Error("engine stopped", "error", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg config.Config, cfgVal *atomic.Value, lg *logger.Logger, seedDemo bool) error {
	dbPath := cfg.Store.Path
	if !filepath.IsAbs(dbPath) {
		dbPath = filepath.Join(cfg.App.DataDir, dbPath)
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := store.Migrate(db.Pool); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if seedDemo {
		if err := seedDemoData(ctx, db); err != nil {
			return fmt.Errorf("seed demo: %w", err)
		}
		lg.Info("demo data seeded")
	}

	registry, err := matching.BuildRegistry(cfg.Scoring)
	if err != nil {
		return err
	}

	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	caches := []catalog.Cache{catalog.NewMemoryCache(ttl)}
	if cfg.Cache.RedisURL != "" {
		rdb, err := catalog.NewRedisClient(ctx, cfg.Cache.RedisURL)
		if err != nil {
			// matching still works from the per-process cache
			lg.Warn("redis unavailable; using memory cache only", "error", err)
		} else {
			defer rdb.Close()
			caches = append(caches, catalog.NewRedisCache(rdb, ttl))
		}
	}

	hub := events.NewHub()
	svc := &service.Service{
		DB:             db.Pool,
		Catalogs:       catalog.NewProvider(store.CatalogLoader{DB: db.Pool}, lg, caches...),
		Registry:       registry,
		Events:         hub,
		Log:            lg,
		PreviewWorkers: cfg.API.PreviewWorkers,
	}

	// Catalog and admin token warm up concurrently.
	var adminToken atomic.Value
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return svc.RefreshCatalog(gctx) })
	g.Go(func() error {
		tok, created, err := secrets.EnsureAdminToken()
		if err != nil {
			lg.Warn("admin token unavailable; admin routes disabled", "error", err)
			return nil
		}
		if created {
			lg.Info("admin token created and stored in the OS keychain", "service", secrets.KeyringService)
		}
		adminToken.Store(tok)
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("warm-up: %w", err)
	}

	sched := scheduler.New(lg, time.Minute)
	if err := sched.Add(ctx, "catalog-refresh", cfg.Cache.RefreshSpec, svc.RefreshCatalog); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	deps := httpapi.Deps{
		Service: svc,
		Hub:     hub,
		Log:     lg,
		CfgVal:  cfgVal,
		RotateToken: func() (string, error) {
			tok, err := secrets.RotateAdminToken()
			if err == nil {
				adminToken.Store(tok)
			}
			return tok, err
		},
	}
	if _, ok := adminToken.Load().(string); ok {
		deps.AdminToken = func() (string, error) {
			return adminToken.Load().(string), nil
		}
	}
	if cfg.API.RatePerSec > 0 {
		deps.Limiter = httpapi.NewClientLimiter(cfg.API.RatePerSec, cfg.API.Burst)
	}

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           httpapi.Handler(deps),
		ReadHeaderTimeout: 5 * time.Second,
	}
	lg.Info("engine listening",
		"addr", "http://"+addr,
		"db", dbPath,
		"matching_version", registry.Current().Version,
	)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	lg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
