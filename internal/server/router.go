package server

import (
	"net/http"

	"invoicebook/internal/auth"
	"invoicebook/internal/config"
	"invoicebook/internal/database"
	"invoicebook/internal/handlers"
	"invoicebook/internal/logger"
	"invoicebook/internal/metrics"
	"invoicebook/internal/middleware"
	"invoicebook/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const sessionName = "invoicebook_session"

// Deps are the process-wide collaborators, built once in main.
type Deps struct {
	Users    *database.UserRepository
	Invoices handlers.InvoiceService
	Log      *zap.Logger
}

func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	handlers.ConfigureValidator()

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		logger.GinMiddleware(deps.Log),
		logger.Recovery(deps.Log),
		metrics.Middleware(),
	)
	r.Use(sessions.Sessions(sessionName, newSessionStore(cfg)))

	gate := auth.NewGate(deps.Users)
	h := handlers.New(gate, deps.Invoices, deps.Log)

	api := r.Group("/api")

	// AUTH
	api.POST("/login", h.Login)
	api.POST("/logout", h.Logout)

	authed := api.Group("/")
	authed.Use(middleware.RequireAuth(gate, deps.Log))
	authed.GET("/me", h.Me)

	// INVOICES
	authed.GET("/invoices", h.ListInvoices)
	authed.POST("/invoices",
		middleware.RequireRole(deps.Log, models.RoleOwner, models.RoleAccountant),
		h.CreateInvoice,
	)
	authed.GET("/invoices/:id", h.GetInvoice)
	authed.PUT("/invoices/:id",
		middleware.RequireRole(deps.Log, models.RoleOwner, models.RoleAccountant),
		h.UpdateInvoice,
	)
	// deleting is reserved for the owner
	authed.DELETE("/invoices/:id",
		middleware.RequireRole(deps.Log, models.RoleOwner),
		h.DeleteInvoice,
	)

	// REPORTS
	authed.GET("/reports/unpaid", h.UnpaidReport)
	authed.GET("/reports/largest-debtors", h.LargestDebtorsReport)
	authed.GET("/reports/average-payment-time", h.AveragePaymentTimeReport)
	authed.GET("/reports/overdue", h.OverdueReport)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func newSessionStore(cfg *config.Config) sessions.Store {
	var store sessions.Store
	if cfg.SessionStore == "memory" {
		store = memstore.NewStore([]byte(cfg.SessionSecret))
	} else {
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		Secure:   cfg.SessionSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return store
}
