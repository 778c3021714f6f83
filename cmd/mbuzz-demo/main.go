// Command mbuzz-demo is a small web app instrumented with the mbuzz SDK.
//
// It reads MBUZZ_* variables (or the YAML file named by MBUZZ_CONFIG_FILE),
// mounts the tracking middleware on a chi router and exposes SDK metrics on
// /metrics.
package main

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/mbuzz/mbuzz-go"
	"github.com/mbuzz/mbuzz-go/pkg/clientip"
	"github.com/mbuzz/mbuzz-go/pkg/config"
	"github.com/mbuzz/mbuzz-go/pkg/cookie"
	"github.com/mbuzz/mbuzz-go/pkg/fingerprint"
	"github.com/mbuzz/mbuzz-go/pkg/logger"
)

type appConfig struct {
	Addr            string        `env:"DEMO_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"DEMO_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	ConfigFile      string        `env:"MBUZZ_CONFIG_FILE"`
	LogFormat       string        `env:"DEMO_LOG_FORMAT" envDefault:"text"`

	Tracking mbuzz.Config
	Cookie   cookie.Config
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mbuzz-demo: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}
	if cfg.ConfigFile != "" {
		if err := config.LoadFile(cfg.ConfigFile, &cfg.Tracking); err != nil {
			return err
		}
	}

	log := logger.New(
		logger.WithEnvironment(os.Getenv("APP_ENV"), "mbuzz-demo"),
		logger.WithFormat(logger.Format(cfg.LogFormat)),
		logger.WithDebug(cfg.Tracking.Debug),
		logger.WithContextExtractors(requestIDExtractor, fingerprintExtractor),
	)
	logger.SetAsDefault(log)

	registry := prometheus.NewRegistry()
	client, err := mbuzz.New(cfg.Tracking,
		mbuzz.WithLogger(log),
		mbuzz.WithMetrics(mbuzz.NewMetrics(registry)),
		mbuzz.WithCookieManager(cookie.NewFromConfig(cfg.Cookie)),
	)
	if err != nil {
		return err
	}
	if client.IsTestKey() {
		log.Info("using test api key")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(client, registry, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("listening", slog.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		if !client.Validate(ctx) {
			log.Warn("mbuzz api key could not be validated; events may be dropped")
		}
		return nil
	})

	return g.Wait()
}

func newRouter(client *mbuzz.Client, registry *prometheus.Registry, log *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(clientip.Middleware)
	r.Use(fingerprint.Middleware)
	r.Use(mbuzz.Middleware(client))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := client.Track(r.Context(), "page_view", map[string]any{"page": "home"}); !ok {
			log.DebugContext(r.Context(), "page_view not tracked")
		}
		visitorID := ""
		if v := mbuzz.VisitorFromContext(r.Context()); v != nil {
			visitorID = v.VisitorID()
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprintf(w, "<h1>mbuzz demo</h1><p>visitor: %s</p><form method=post action=/signup><input name=email><button>Sign up</button></form>", html.EscapeString(visitorID))
	})

	r.Post("/signup", func(w http.ResponseWriter, r *http.Request) {
		email := r.FormValue("email")
		if email == "" {
			http.Error(w, "email is required", http.StatusUnprocessableEntity)
			return
		}
		ctx := r.Context()
		client.Identify(ctx, email, map[string]any{"email": email})
		res, ok := client.Convert(ctx, "signup", mbuzz.Conversion{IsAcquisition: true})
		if ok {
			log.InfoContext(ctx, "signup converted", slog.String("conversion_id", res.ConversionID))
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	})

	return r
}

func fingerprintExtractor(ctx context.Context) (slog.Attr, bool) {
	fp := fingerprint.GetFingerprintFromContext(ctx)
	if fp == "" {
		return slog.Attr{}, false
	}
	return slog.String("device", fp), true
}

func requestIDExtractor(ctx context.Context) (slog.Attr, bool) {
	id := middleware.GetReqID(ctx)
	if id == "" {
		return slog.Attr{}, false
	}
	return slog.String("request_id", id), true
}
