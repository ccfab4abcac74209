package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/five82/shelf/internal/cache"
	"github.com/five82/shelf/internal/config"
	"github.com/five82/shelf/internal/filter"
	"github.com/five82/shelf/internal/logging"
	"github.com/five82/shelf/internal/metrics"
	"github.com/five82/shelf/internal/prefs"
	"github.com/five82/shelf/internal/search"
	"github.com/five82/shelf/internal/state"
	"github.com/five82/shelf/internal/ui"
	"github.com/five82/shelf/internal/wps"
)

const metricsShutdownTimeout = 2 * time.Second

// Options configure the shelf application.
type Options struct {
	ConfigPath  string
	PrefsPath   string // empty uses default ~/.config/shelf/prefs.toml
	Endpoint    string // overrides the configured endpoint
	LogLevel    string // overrides the configured level
	MetricsAddr string // overrides the configured metrics listener
}

// Run boots the shelf TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(opts.ConfigPath, overrides{
		endpoint:    opts.Endpoint,
		logLevel:    opts.LogLevel,
		metricsAddr: opts.MetricsAddr,
	})
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Path: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("load prefs failed; using defaults", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rt := newRuntime(ctx, cfg, logger)
	defer rt.Close()

	g, gctx := errgroup.WithContext(ctx)

	if cfg.MetricsAddr != "" {
		ln, err := net.Listen("tcp", cfg.MetricsAddr)
		if err != nil {
			return fmt.Errorf("listen metrics: %w", err)
		}
		logger.Info("serving metrics", zap.String("addr", ln.Addr().String()))
		g.Go(func() error {
			return serveMetrics(gctx, ln, rt.metrics)
		})
	}

	g.Go(func() error {
		// Quitting the TUI stops the metrics server too.
		defer cancel()
		return ui.Run(ui.Options{
			Context:       gctx,
			Filters:       filter.NewStore(cfg.Endpoint),
			Results:       rt.results,
			Sync:          rt.sync,
			QueryDelay:    cfg.QueryDelay,
			EndpointDelay: cfg.EndpointDelay,
			PageSize:      cfg.PageSize,
			Prefs:         userPrefs,
			PrefsPath:     opts.PrefsPath,
			Logger:        logger,
		})
	})

	logger.Info("shelf started", zap.String("endpoint", cfg.Endpoint))
	return g.Wait()
}

type overrides struct {
	endpoint    string
	logLevel    string
	metricsAddr string
}

func loadConfig(path string, o overrides) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if o.endpoint != "" {
		cfg.Endpoint = o.endpoint
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.metricsAddr != "" {
		cfg.MetricsAddr = o.metricsAddr
	}
	return cfg, nil
}

// runtime holds the components shared by the TUI and the headless query.
type runtime struct {
	logger  *zap.Logger
	metrics *metrics.Recorder
	cache   cache.Cache
	results *state.Store
	sync    *search.Synchronizer
}

// newRuntime wires cache, client, result store and synchronizer. An
// unreachable Redis degrades to the in-process cache.
func newRuntime(ctx context.Context, cfg config.Config, logger *zap.Logger) *runtime {
	rec := metrics.New()

	opts := cache.Options{
		TTL:        cfg.Cache.TTL,
		MaxEntries: cfg.Cache.MaxEntries,
		RedisURL:   cfg.Cache.RedisURL,
	}
	responses, err := cache.New(ctx, opts)
	if err != nil {
		logger.Warn("response cache unavailable; using in-process cache",
			zap.String("redis_url", cfg.Cache.RedisURL), zap.Error(err))
		opts.RedisURL = ""
		responses, _ = cache.New(ctx, opts)
	}

	client := wps.NewClient(wps.ClientOptions{
		Timeout: cfg.RequestTimeout,
		Cache:   responses,
		Metrics: rec,
		Logger:  logger,
	})
	results := &state.Store{}

	return &runtime{
		logger:  logger,
		metrics: rec,
		cache:   responses,
		results: results,
		sync: search.New(ctx, search.Options{
			Searcher: client,
			Store:    results,
			Logger:   logger,
			Metrics:  rec,
		}),
	}
}

// Close cancels the in-flight request and releases the cache.
func (r *runtime) Close() {
	r.sync.Close()
	if closer, ok := r.cache.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			r.logger.Warn("close cache", zap.Error(err))
		}
	}
}

// serveMetrics serves /metrics on ln until ctx is done.
func serveMetrics(ctx context.Context, ln net.Listener, rec *metrics.Recorder) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", rec.Handler())
	server := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown metrics: %w", err)
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve metrics: %w", err)
	}
}
