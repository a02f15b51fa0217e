package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
	"golang.org/x/sync/errgroup"

	storefrontserver "github.com/Apurer/go-gin-storefront/go"

	storememory "github.com/Apurer/go-gin-storefront/internal/domains/store/adapters/memory"
	storeobs "github.com/Apurer/go-gin-storefront/internal/domains/store/adapters/observability"
	storepostgres "github.com/Apurer/go-gin-storefront/internal/domains/store/adapters/persistence/postgres"
	storeworkflows "github.com/Apurer/go-gin-storefront/internal/domains/store/adapters/workflows"
	storeapp "github.com/Apurer/go-gin-storefront/internal/domains/store/application"
	storedomain "github.com/Apurer/go-gin-storefront/internal/domains/store/domain"
	storeports "github.com/Apurer/go-gin-storefront/internal/domains/store/ports"
	checkoutactivities "github.com/Apurer/go-gin-storefront/internal/durable/temporal/activities/checkout"
	checkoutworkflows "github.com/Apurer/go-gin-storefront/internal/durable/temporal/workflows/checkout"
	"github.com/Apurer/go-gin-storefront/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-storefront/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-storefront/internal/platform/postgres"
)

const serviceName = "storefront-api"

// Run boots the storefront HTTP API with observability, the stock ledger, and
// checkout orchestration wired. It returns when ctx is cancelled or the server fails.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Settings{
		ServiceName: serviceName,
		Environment: cfg.Environment,
		LogLevel:    cfg.LogLevel,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	ledger, cleanupLedger := buildStockLedger(ctx, cfg, logger)
	defer cleanupLedger()

	coreService := storeapp.NewService(storememory.NewProductRepository(), storememory.NewCustomerRepository(), ledger, cfg.Tax)
	service := storeobs.New(
		coreService,
		storeobs.WithLogger(logger),
		storeobs.WithTracer(instruments.Tracer("internal.store.application")),
		storeobs.WithMeter(instruments.Meter("internal.store.application")),
	)
	logger.Info("storefront pricing configured", slog.Float64("tax.percentage", coreService.TaxFactor().Percentage()))

	var checkout storeports.CheckoutOrchestrator = storeworkflows.NewInlineCheckout(service)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running inline checkout", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		stopWorker, err := startCheckoutWorker(temporalClient, service)
		if err != nil {
			logger.Warn("Temporal worker failed to start, running inline checkout", slog.String("error", err.Error()))
		} else {
			defer stopWorker()
			checkout = storeworkflows.NewTemporalCheckout(temporalClient)
			logger.Info("Temporal workflows enabled",
				slog.String("namespace", cfg.TemporalNamespace),
				slog.String("taskQueue", checkoutworkflows.CheckoutTaskQueue))
		}
	}

	handlers := storefrontserver.ApiHandleFunctions{
		ProductAPI:  storefrontserver.NewProductAPI(service),
		CustomerAPI: storefrontserver.NewCustomerAPI(service, checkout),
	}
	router := newRouter(handlers)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("storefront API listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		logger.Error("storefront API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	}
	logger.Info("storefront API stopped")
	return nil
}

// newRouter installs middleware before any route so every handler chain
// carries the request span.
func newRouter(handlers storefrontserver.ApiHandleFunctions, opts ...otelgin.Option) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), otelgin.Middleware(serviceName, opts...))
	return storefrontserver.NewRouterWithGinEngine(engine, handlers)
}

func buildStockLedger(ctx context.Context, cfg Config, logger *slog.Logger) (storeports.StockLedger, func()) {
	db, cleanup := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	if db == nil {
		return storedomain.NewStore(), cleanup
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to migrate postgres schema, falling back to in-memory stock ledger", slog.String("error", err.Error()))
		cleanup()
		return storedomain.NewStore(), func() {}
	}
	logger.Info("stock ledger configured with postgres")
	return storepostgres.NewStockLedger(db), cleanup
}

// startCheckoutWorker runs the checkout worker inside this process; customer
// sessions live in memory here, so no other process can serve the activity.
func startCheckoutWorker(c client.Client, service storeports.Service) (func(), error) {
	w := worker.New(c, checkoutworkflows.CheckoutTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(checkoutworkflows.CheckoutWorkflow, workflow.RegisterOptions{Name: checkoutworkflows.CheckoutWorkflowName})
	w.RegisterActivityWithOptions(checkoutactivities.NewActivities(service).Checkout, activity.RegisterOptions{Name: checkoutactivities.CheckoutActivityName})
	if err := w.Start(); err != nil {
		return nil, err
	}
	return w.Stop, nil
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.Default()
}
