package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cducote/pawstock-backend/api/controllers"
	"github.com/cducote/pawstock-backend/api/middleware"
	"github.com/cducote/pawstock-backend/internal/catalog"
	"github.com/cducote/pawstock-backend/internal/ledger"
	"github.com/cducote/pawstock-backend/internal/stockview"
	"github.com/cducote/pawstock-backend/pkg/config"
	"github.com/cducote/pawstock-backend/pkg/logger"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DBPinger       controllers.Pinger
	RedisPinger    controllers.Pinger
	CatalogService catalog.Service
	LedgerService  ledger.Service
	StockService   *stockview.Service
	MetricsGateway prometheus.Gatherer
}

// NewRouter assembles the HTTP surface of the inventory API.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.DBPinger, deps.RedisPinger))
	})

	if deps.MetricsGateway != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsGateway, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.CatalogService, deps.Logger))
			r.Post("/", controllers.CreateProduct(deps.CatalogService, deps.Logger))

			r.Route("/{productId}", func(r chi.Router) {
				r.Get("/", controllers.GetProduct(deps.CatalogService, deps.Logger))
				r.Patch("/", controllers.UpdateProduct(deps.CatalogService, deps.Logger))
				r.Delete("/", controllers.DeactivateProduct(deps.CatalogService, deps.Logger))

				r.Get("/variants", controllers.ListVariants(deps.CatalogService, deps.Logger))
				r.Post("/variants", controllers.CreateVariant(deps.CatalogService, deps.Logger))
			})
		})

		r.Route("/variants", func(r chi.Router) {
			r.Get("/lookup", controllers.LookupVariantBySKU(deps.CatalogService, deps.Logger))
			r.Get("/{variantId}/transactions", controllers.ListVariantTransactions(deps.LedgerService, deps.Logger))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Post("/transactions", controllers.RecordTransaction(deps.LedgerService, deps.Logger))
			r.Post("/adjustments", controllers.BulkAdjust(deps.LedgerService, deps.Logger))
			r.Get("/stock-levels", controllers.StockLevels(deps.StockService, deps.Logger))
			r.Get("/low-stock", controllers.LowStock(deps.StockService, deps.Logger))
		})

		r.Route("/suppliers", func(r chi.Router) {
			r.Get("/", controllers.ListSuppliers(deps.CatalogService, deps.Logger))
			r.Post("/", controllers.CreateSupplier(deps.CatalogService, deps.Logger))
		})

		r.Route("/matching-sets", func(r chi.Router) {
			r.Get("/", controllers.ListMatchingSets(deps.CatalogService, deps.Logger))
			r.Post("/", controllers.CreateMatchingSet(deps.CatalogService, deps.Logger))
			r.Delete("/{setId}", controllers.DeleteMatchingSet(deps.CatalogService, deps.Logger))
		})
	})

	return r
}
