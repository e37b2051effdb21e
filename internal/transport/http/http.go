package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"

	"github.com/ishop-labs/backend/internal/service/models/notification"
	"github.com/ishop-labs/backend/internal/service/models/order"
	"github.com/ishop-labs/backend/internal/service/models/worker"
	"github.com/ishop-labs/backend/pkg/http/middleware/auth"
	"github.com/ishop-labs/backend/pkg/http/middleware/trace"
	"github.com/ishop-labs/backend/pkg/logger"
)

type orderService interface {
	Create(ctx context.Context, userID int64, items []order.Item, estimatedArrival *time.Time) ([]int64, error)
	List(ctx context.Context, page, limit int) (*order.Page, error)
	GetByID(ctx context.Context, id int64) (*order.Order, error)
	Update(ctx context.Context, id int64, productID int64, quantity int) (*order.Order, error)
	Delete(ctx context.Context, id int64) (order.DeleteResult, error)
	Complete(ctx context.Context, orderID int64) (*order.Order, error)
	AssignWorker(ctx context.Context, orderID, workerID int64) error
	ListByWorker(ctx context.Context, workerID int64) ([]order.Order, error)
	ListWithWorker(ctx context.Context) ([]order.Order, error)
}

type workerService interface {
	List(ctx context.Context, page, limit int) (*worker.Page, error)
	Orders(ctx context.Context, workerID int64, page, limit int) (*order.Page, error)
}

// notifier is the completion email collaborator. The transport only hands it
// the event; delivery lives outside this service.
type notifier interface {
	OrderCompleted(ctx context.Context, event notification.OrderCompletedEvent) error
}

type HTTPTransport struct {
	server    *http.Server
	router    *chi.Mux
	orderSvc  orderService
	workerSvc workerService
	notifier  notifier
	verifier  auth.Verifier
}

func NewHTTPTransport(orderSvc orderService, workerSvc workerService, notifier notifier, verifier auth.Verifier) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:    server,
		router:    router,
		orderSvc:  orderSvc,
		workerSvc: workerSvc,
		notifier:  notifier,
		verifier:  verifier,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport. Checkout is the
// only open route; everything else needs a verified identity, and the admin
// and worker groups are role-gated on top of that.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Post("/orders/checkout", h.checkout)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate(h.verifier))

			r.Get("/orders", h.listOrders)
			r.Get("/orders/id/{id}", h.getOrder)
			r.Put("/orders/id/{id}", h.updateOrder)
			r.Delete("/orders/id/{id}", h.deleteOrder)
			r.Post("/orders/complete/{orderId}", h.completeOrder)

			r.Route("/admin", func(r chi.Router) {
				r.Use(auth.RequireRole("ADMIN"))
				r.Post("/assign-order", h.assignOrder)
				r.Get("/orders", h.adminOrders)
				r.Get("/workers", h.adminWorkers)
				r.Get("/worker/{workerId}/orders", h.adminWorkerOrders)
			})

			r.Route("/worker", func(r chi.Router) {
				r.Use(auth.RequireRole("WORKER"))
				r.Get("/{workerId}/orders", h.workerOrders)
				r.Post("/{workerId}/orders/{orderId}/complete", h.completeWorkerOrder)
			})
		})
	})
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
