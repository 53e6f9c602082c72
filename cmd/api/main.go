package main

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/superiorbooks/backend-pos/internal/audit"
	"github.com/superiorbooks/backend-pos/internal/catalog"
	"github.com/superiorbooks/backend-pos/internal/checkout"
	"github.com/superiorbooks/backend-pos/internal/closure"
	"github.com/superiorbooks/backend-pos/internal/config"
	"github.com/superiorbooks/backend-pos/internal/events"
	"github.com/superiorbooks/backend-pos/internal/finance"
	"github.com/superiorbooks/backend-pos/internal/health"
	"github.com/superiorbooks/backend-pos/internal/ledger"
	"github.com/superiorbooks/backend-pos/internal/obs"
	"github.com/superiorbooks/backend-pos/internal/operator"
	"github.com/superiorbooks/backend-pos/internal/printdesk"
	"github.com/superiorbooks/backend-pos/internal/ratelimit"
	"github.com/superiorbooks/backend-pos/internal/reports"
	"github.com/superiorbooks/backend-pos/internal/security"
	"github.com/superiorbooks/backend-pos/internal/settings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel).With().Str("env", cfg.AppEnv).Logger()

	if cfg.EnablePrometheus {
		obs.MustRegisterDomainMetrics(cfg.MetricsNamespace, nil)
	}

	var catalogStore *catalog.Store
	if cfg.SeedDemoData {
		catalogStore = catalog.NewSeededStore()
	} else {
		catalogStore = catalog.NewStore()
	}

	settingsStore := settings.NewStore()
	pos := settingsStore.POS()
	pos.DefaultTaxBps = cfg.DefaultTaxBps
	settingsStore.SetPOS(pos)

	ledgerStore := ledger.NewStore()
	closureStore := closure.NewStore()
	expenseStore := finance.NewExpenseStore()
	printStore := printdesk.NewStore()
	auditLog := audit.NewLog()

	bus := &events.Bus{Notifiers: []events.Notifier{
		audit.Notifier{Log: auditLog},
		obs.MetricsNotifier{},
	}}

	ledgerSvc := &ledger.Service{Ledger: ledgerStore, Events: bus}
	checkoutSvc := &checkout.Service{
		Catalog:  catalogStore,
		Settings: settingsStore,
		Ledger:   ledgerStore,
		Events:   bus,
	}
	closureSvc := &closure.Service{Ledger: ledgerStore, Closures: closureStore, Events: bus}
	financeSvc := &finance.Service{
		Ledger:   ledgerStore,
		Closures: closureStore,
		Expenses: expenseStore,
		Events:   bus,
	}
	printSvc := &printdesk.Service{Orders: printStore, Settings: settingsStore, Events: bus}
	reportsSvc := &reports.Service{Ledger: ledgerStore}

	catalogHandler := &catalog.Handler{Store: catalogStore}
	settingsHandler := &settings.Handler{Store: settingsStore}
	checkoutHandler := &checkout.Handler{Service: checkoutSvc}
	ledgerHandler := &ledger.Handler{Store: ledgerStore, Service: ledgerSvc}
	closureHandler := &closure.Handler{Store: closureStore, Service: closureSvc}
	financeHandler := &finance.Handler{Service: financeSvc}
	printHandler := &printdesk.Handler{Service: printSvc}
	reportsHandler := &reports.Handler{Service: reportsSvc}
	auditHandler := &audit.Handler{Log: auditLog}

	var httpMetrics *obs.HTTPMetrics
	if cfg.EnablePrometheus {
		buckets := obs.ParseBucketsCSV(envOrDefault("OBS_METRICS_BUCKETS_MS", ""))
		httpMetrics = obs.NewHTTPMetrics(cfg.MetricsNamespace, buckets, nil)
	}

	limiter := ratelimit.New(ratelimit.Config{Enabled: cfg.RateLimitEnabled, RPS: cfg.RateLimitRPS})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.RoutePatternMiddleware)
	if cfg.EnablePrometheus && httpMetrics != nil {
		r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(security.Headers{Enable: true}.Middleware)
	r.Use(security.BodyLimit{Max: 1 << 20}.Middleware)
	r.Use(limiter.Handler)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Operator-Id", "X-Operator-Name", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(operator.Middleware)

	if cfg.EnablePrometheus {
		r.Handle("/metrics", promhttp.Handler())
	}

	healthHandler := health.Handler{Probes: map[string]health.Probe{
		"ledger":  func() bool { return ledgerStore != nil },
		"catalog": func() bool { return catalogStore != nil },
	}}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		v.Route("/catalog", func(c chi.Router) {
			c.Get("/", catalogHandler.List)
			c.Get("/{sku}", catalogHandler.Get)
			c.With(operator.Require).Post("/", catalogHandler.Create)
			c.With(operator.Require).Put("/{sku}", catalogHandler.Update)
			c.With(operator.Require).Post("/{sku}/restock", catalogHandler.Restock)
		})

		v.Route("/settings", func(st chi.Router) {
			st.Get("/", settingsHandler.Get)
			st.Group(func(g chi.Router) {
				g.Use(operator.Require)
				g.Put("/service-prices", settingsHandler.UpdateServicePrices)
				g.Put("/print-prices", settingsHandler.UpdatePrintPrices)
				g.Put("/pos", settingsHandler.UpdatePOS)
				g.Put("/payment-gateways", settingsHandler.UpdatePaymentGateways)
			})
		})

		v.Route("/pos", func(p chi.Router) {
			p.Post("/quote", checkoutHandler.QuoteCart)
			p.With(operator.Require).Post("/checkout", checkoutHandler.CheckoutPOS)
		})
		v.Route("/service", func(sv chi.Router) {
			sv.Post("/quote", checkoutHandler.QuoteService)
			sv.With(operator.Require).Post("/checkout", checkoutHandler.CheckoutService)
		})

		v.Route("/sales", func(s chi.Router) {
			s.Get("/", ledgerHandler.ListSales)
			s.Get("/{id}", ledgerHandler.GetSale)
			s.With(operator.Require).Post("/{id}/refunds", ledgerHandler.CreateRefund)
		})
		v.Get("/refunds", ledgerHandler.ListRefunds)

		v.Route("/closures", func(c chi.Router) {
			c.Get("/", closureHandler.List)
			c.Get("/{id}", closureHandler.Get)
			c.Group(func(g chi.Router) {
				g.Use(operator.Require)
				g.Get("/preview", closureHandler.Preview)
				g.Post("/", closureHandler.Create)
				g.Post("/{id}/receive", closureHandler.Receive)
			})
		})

		v.Route("/finance", func(f chi.Router) {
			f.Get("/summary", financeHandler.Summary)
			f.Get("/expenses", financeHandler.ListExpenses)
			f.Group(func(g chi.Router) {
				g.Use(operator.Require)
				g.Post("/expenses", financeHandler.CreateExpense)
				g.Put("/expenses/{id}", financeHandler.UpdateExpense)
				g.Delete("/expenses/{id}", financeHandler.DeleteExpense)
			})
		})

		v.Route("/print-orders", func(p chi.Router) {
			p.Post("/quote", printHandler.Quote)
			p.Get("/", printHandler.List)
			p.Get("/{id}", printHandler.Get)
			p.Group(func(g chi.Router) {
				g.Use(operator.Require)
				g.Post("/", printHandler.Create)
				g.Patch("/{id}/status", printHandler.UpdateStatus)
			})
		})

		v.Route("/reports", func(rp chi.Router) {
			rp.Get("/sales", reportsHandler.SalesRange)
			rp.Get("/top-items", reportsHandler.TopItems)
		})

		v.Get("/activity", auditHandler.List)
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info().Str("addr", srv.Addr).Msg("server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server exited unexpectedly")
	}
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}
