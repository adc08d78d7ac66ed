package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/casamais/casamais-backend/api/controllers"
	"github.com/casamais/casamais-backend/api/middleware"
	"github.com/casamais/casamais-backend/internal/auth"
	"github.com/casamais/casamais-backend/internal/medications"
	product "github.com/casamais/casamais-backend/internal/products"
	"github.com/casamais/casamais-backend/internal/recipes"
	"github.com/casamais/casamais-backend/internal/sales"
	"github.com/casamais/casamais-backend/internal/units"
	"github.com/casamais/casamais-backend/pkg/auth/session"
	"github.com/casamais/casamais-backend/pkg/config"
	"github.com/casamais/casamais-backend/pkg/db"
	"github.com/casamais/casamais-backend/pkg/enums"
	"github.com/casamais/casamais-backend/pkg/logger"
	"github.com/casamais/casamais-backend/pkg/metrics"
	"github.com/casamais/casamais-backend/pkg/redis"
)

// RedisStore is the slice of the Redis client the router needs for
// readiness and login throttling.
type RedisStore interface {
	Ping(context.Context) error
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

// Deps carries everything NewRouter wires. Redis, Sessions, HTTPMetrics and
// Gatherer are optional; leave them nil when the backing service is disabled.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       RedisStore
	Sessions    session.AccessSessionChecker
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer

	Auth        auth.Service
	Sales       sales.Service
	Products    product.Service
	Recipes     recipes.Service
	Medications medications.Service
	Units       units.Service
}

func NewRouter(d Deps) http.Handler {
	cfg, logg := d.Config, d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.HTTPMetrics),
		middleware.CORS(cfg.App.CORSAllowedOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	var readyRedis redis.Pinger
	var limiter interface {
		IncrWithTTL(context.Context, string, time.Duration) (int64, error)
	}
	if d.Redis != nil {
		readyRedis, limiter = d.Redis, d.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, d.DB, readyRedis, logg))
	})

	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, limiter, logg)).Post("/login", controllers.AuthLogin(d.Auth, logg))
		r.With(middleware.Auth(cfg.JWT, d.Sessions, logg)).Post("/logout", controllers.AuthLogout(d.Auth, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))

		r.Route("/vendas", func(r chi.Router) {
			read := middleware.RequirePermission(enums.PermissionVendasLer, logg)
			write := middleware.RequirePermission(enums.PermissionVendasGerenciar, logg)

			r.With(read).Get("/", controllers.VendasList(d.Sales, logg))
			r.With(read).Get("/relatorio", controllers.VendasReport(d.Sales, logg))
			r.With(read).Get("/{id}", controllers.VendasGet(d.Sales, logg))
			r.With(write).Post("/", controllers.VendasCreate(d.Sales, logg))
			r.With(write).Put("/{id}", controllers.VendasUpdate(d.Sales, logg))
			r.With(write).Delete("/{id}", controllers.VendasDelete(d.Sales, logg))
		})

		r.Route("/produtos", func(r chi.Router) {
			read := middleware.RequirePermission(enums.PermissionProdutosLer, logg)
			write := middleware.RequirePermission(enums.PermissionProdutosGerenciar, logg)

			r.With(read).Get("/", controllers.ProdutosList(d.Products, logg))
			r.With(read).Get("/{id}", controllers.ProdutosGet(d.Products, logg))
			r.With(write).Post("/", controllers.ProdutosCreate(d.Products, logg))
			r.With(write).Put("/{id}", controllers.ProdutosUpdate(d.Products, logg))
			r.With(write).Delete("/{id}", controllers.ProdutosDelete(d.Products, logg))
		})

		r.Route("/receitas", func(r chi.Router) {
			read := middleware.RequirePermission(enums.PermissionProdutosLer, logg)
			write := middleware.RequirePermission(enums.PermissionProdutosGerenciar, logg)

			r.With(read).Get("/", controllers.ReceitasList(d.Recipes, logg))
			r.With(read).Get("/{id}", controllers.ReceitasGet(d.Recipes, logg))
			r.With(write).Post("/", controllers.ReceitasCreate(d.Recipes, logg))
			r.With(write).Put("/{id}", controllers.ReceitasUpdate(d.Recipes, logg))
		})

		r.Route("/medicamentos", func(r chi.Router) {
			read := middleware.RequirePermission(enums.PermissionMedicamentosLer, logg)
			write := middleware.RequirePermission(enums.PermissionMedicamentosGerenciar, logg)

			r.With(read).Get("/", controllers.MedicamentosList(d.Medications, logg))
			r.With(read).Get("/{id}", controllers.MedicamentosGet(d.Medications, logg))
			r.With(write).Post("/", controllers.MedicamentosCreate(d.Medications, logg))
			r.With(write).Put("/{id}", controllers.MedicamentosUpdate(d.Medications, logg))
			r.With(write).Delete("/{id}", controllers.MedicamentosDelete(d.Medications, logg))
		})

		r.With(middleware.RequirePermission(enums.PermissionMedicamentosLer, logg)).
			Get("/unidades-medida", controllers.UnidadesList(d.Units, logg))
	})

	return r
}
