// Command regform serves the registration form over HTTP.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/regform/modules/registration"
	"github.com/dmitrymomot/regform/pkg/clientip"
	"github.com/dmitrymomot/regform/pkg/config"
	"github.com/dmitrymomot/regform/pkg/httpserver"
	"github.com/dmitrymomot/regform/pkg/logger"
	"github.com/dmitrymomot/regform/pkg/ratelimiter"
	"github.com/dmitrymomot/regform/pkg/requestid"
)

type appConfig struct {
	Env                  string        `env:"APP_ENV" envDefault:"development"`
	Name                 string        `env:"APP_NAME" envDefault:"regform" validate:"required"`
	HealthcheckTimeout   time.Duration `env:"HEALTHCHECK_TIMEOUT" envDefault:"3s" validate:"gt=0"`
	SessionSweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"1m" validate:"gte=0"`
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		appCfg   appConfig
		httpCfg  httpserver.Config
		regCfg   registration.Config
		limitCfg ratelimiter.Config
		ipCfg    clientip.Config
	)
	if err := config.Load(&appCfg); err != nil {
		return err
	}
	if err := config.Load(&httpCfg); err != nil {
		return err
	}
	if err := config.Load(&regCfg); err != nil {
		return err
	}
	if err := config.Load(&limitCfg); err != nil {
		return err
	}
	if err := config.Load(&ipCfg); err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(appCfg.Env, appCfg.Name),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			registration.SessionIDExtractor(),
		),
	)
	logger.SetAsDefault(log)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	be, err := openBackend(ctx, regCfg, log)
	if err != nil {
		return err
	}
	defer be.close(context.WithoutCancel(ctx))

	notifier, err := newNotifier(regCfg, log)
	if err != nil {
		return err
	}

	limiter, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(limitCfg), limitCfg)
	if err != nil {
		return err
	}

	svc := registration.NewService(regCfg, be.storage,
		registration.WithLogger(log),
		registration.WithNotifier(notifier),
		registration.WithSubmitLimiter(limiter),
		registration.WithClientIP(clientip.NewFromConfig(ipCfg)),
	)
	go svc.Sessions().Sweep(ctx, appCfg.SessionSweepInterval)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Get("/healthz", httpserver.HealthCheckHandler(log, 0, nil))
	checks := map[string]httpserver.Check{"storage": svc.Healthcheck}
	maps.Copy(checks, be.checks)
	r.Get("/readyz", httpserver.HealthCheckHandler(log, appCfg.HealthcheckTimeout, checks))
	r.Mount(regCfg.BasePath, svc.Handle())
	if regCfg.BasePath != "/" {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, regCfg.BasePath+"/", http.StatusFound)
		})
	}

	srv := httpserver.NewFromConfig(httpCfg,
		httpserver.WithLogger(log),
		httpserver.WithStopHook(func(ctx context.Context, l *slog.Logger) {
			cancel()
			l.DebugContext(ctx, "session sweeper stopped")
		}),
	)
	return srv.Run(ctx, r)
}
