package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/silvarafa06/1023A-backend-novo-1/internal/handler"
	"github.com/silvarafa06/1023A-backend-novo-1/internal/middleware"
	"github.com/silvarafa06/1023A-backend-novo-1/internal/platform/metrics"
	"go.uber.org/zap"
)

// New builds the route table. The paths mirror the public API: users and
// products are plain collection endpoints, the cart has one sub-path per
// mutation.
func New(
	cartHandler *handler.CartHandler,
	catalogHandler *handler.CatalogHandler,
	userHandler *handler.UserHandler,
	m *metrics.Manager,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger(logger))
	if m != nil {
		r.Use(middleware.Metrics(m))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Post("/usuarios", userHandler.AddUser)
	r.Get("/usuarios", userHandler.ListUsers)

	r.Get("/carrinho", cartHandler.GetCart)
	r.Post("/carrinho", cartHandler.AddItem)
	r.Put("/carrinho/quantidade", cartHandler.UpdateQuantity)
	r.Delete("/carrinho/item", cartHandler.RemoveItem)
	r.Delete("/carrinho", cartHandler.RemoveCart)

	r.Get("/produtos", catalogHandler.ListProducts)
	r.Post("/produtos", catalogHandler.AddProduct)

	return r
}
