package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/grocerly/grocerly-backend/api/controllers"
	"github.com/grocerly/grocerly-backend/api/middleware"
	cartsvc "github.com/grocerly/grocerly-backend/internal/cart"
	"github.com/grocerly/grocerly-backend/internal/catalog"
	"github.com/grocerly/grocerly-backend/internal/drafts"
	productsvc "github.com/grocerly/grocerly-backend/internal/products"
	"github.com/grocerly/grocerly-backend/pkg/config"
	"github.com/grocerly/grocerly-backend/pkg/db"
	"github.com/grocerly/grocerly-backend/pkg/logger"
	"github.com/grocerly/grocerly-backend/pkg/metrics"
	"github.com/grocerly/grocerly-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *redis.Client
	HTTPMetrics *metrics.HTTPMetrics
	Registry    *prometheus.Registry

	Products productsvc.Service
	Cart     cartsvc.Service
	Catalog  catalog.Service
	Drafts   drafts.Service
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(deps.Config.App.CORSOrigins),
	)
	if deps.Redis != nil {
		r.Use(middleware.Idempotency(deps.Redis, deps.Logger))
	}

	r.Get("/", controllers.Root())

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.DB, redisPinger(deps.Redis), deps.Logger))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(deps.Products, deps.Logger))
		r.Post("/", controllers.CreateProduct(deps.Products, deps.Logger))
		r.Get("/{id}", controllers.GetProduct(deps.Products, deps.Logger))
		r.Patch("/{id}", controllers.UpdateProduct(deps.Products, deps.Logger))
		r.Delete("/{id}", controllers.DeleteProduct(deps.Products, deps.Logger))
	})

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", controllers.GetCart(deps.Cart, deps.Logger))
		r.Delete("/", controllers.EmptyCart(deps.Cart, deps.Logger))
		r.Post("/items", controllers.AddCartItem(deps.Cart, deps.Logger))
		r.Post("/items/from-pending/{productId}", controllers.AddCartItemFromPending(deps.Cart, deps.Logger))
		r.Patch("/items/{productId}", controllers.UpdateCartItemQuantity(deps.Cart, deps.Logger))
		r.Delete("/items/{productId}", controllers.RemoveCartItem(deps.Cart, deps.Logger))
	})

	r.Route("/catalog/quantities", func(r chi.Router) {
		r.Get("/", controllers.ListPendingQuantities(deps.Catalog, deps.Logger))
		r.Patch("/{productId}", controllers.AdjustPendingQuantity(deps.Catalog, deps.Logger))
	})

	r.Route("/draft", func(r chi.Router) {
		r.Get("/", controllers.GetDraft(deps.Drafts, deps.Logger))
		r.Patch("/", controllers.SetDraftField(deps.Drafts, deps.Logger))
		r.Post("/edit/{productId}", controllers.BeginDraftEdit(deps.Drafts, deps.Logger))
		r.Post("/submit", controllers.SubmitDraft(deps.Drafts, deps.Logger))
		r.Post("/cancel", controllers.CancelDraft(deps.Drafts, deps.Logger))
	})

	return r
}

// redisPinger narrows the optional client to the health check surface;
// a nil client stays nil so readiness skips it.
func redisPinger(client *redis.Client) db.Pinger {
	if client == nil {
		return nil
	}
	return client
}
