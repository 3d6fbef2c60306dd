package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"teadesk-system/internal/auth"
	"teadesk-system/internal/common/logger"
	"teadesk-system/internal/domain"
	"teadesk-system/internal/service"
	"teadesk-system/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	Orders *OrderHandler
	Desks  *DeskHandler
	Menu   *MenuHandler

	authn       *auth.Authenticator
	lg          *logger.Logger
	dataDir     string
	corsOrigins []string
}

func New(s *service.Service, authn *auth.Authenticator, lg *logger.Logger, dataDir string, corsOrigins []string) *Handler {
	return &Handler{
		Orders:      NewOrderHandler(s.Orders),
		Desks:       NewDeskHandler(s.Desks),
		Menu:        NewMenuHandler(s.Menu),
		authn:       authn,
		lg:          lg,
		dataDir:     dataDir,
		corsOrigins: corsOrigins,
	}
}

// Router assembles the gin engine: webapp endpoints are public, the
// dashboard mutations sit behind the auth middleware.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), h.requestLogger())

	if len(h.corsOrigins) > 0 {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = h.corsOrigins
		cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", "X-Company-Id")
		r.Use(cors.New(cfg))
	}

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/uploads/:company/*filepath", h.serveUpload)

	api := r.Group("/api")
	api.POST("/auth/login", h.login)

	api.GET("/orders", h.Orders.List)
	api.POST("/orders", h.Orders.Create)
	api.GET("/orders/:id", h.Orders.Get)
	api.POST("/orders/:id/rating", h.Orders.Rate)
	api.GET("/desks", h.Desks.Get)
	api.GET("/menu", h.Menu.Get)

	staff := api.Group("", h.authn.Middleware())
	staff.PATCH("/orders/:id", h.Orders.Update)
	staff.PUT("/orders", h.Orders.BulkReplace)
	staff.DELETE("/orders/:id", h.Orders.Delete)
	staff.DELETE("/orders", h.Orders.Clear)
	staff.PUT("/desks", h.Desks.SaveAll)
	staff.PUT("/desks/:id", h.Desks.SaveDesk)
	staff.PUT("/menu", h.Menu.Save)

	return r
}

func (h *Handler) login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	token, expires, err := h.authn.Login(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, domain.LoginResponse{Token: token, ExpiresAt: expires.UTC().Format(time.RFC3339)})
}

// serveUpload exposes extracted menu images. The company segment and
// the file path are both normalized before touching the filesystem.
func (h *Handler) serveUpload(c *gin.Context) {
	company := storage.SanitizeCompany(c.Param("company"))
	rel := filepath.Clean("/" + c.Param("filepath"))
	c.File(filepath.Join(h.dataDir, company, "uploads", rel))
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set("request_id", id)
		start := time.Now()
		c.Next()
		h.lg.WithRequestID(id).Info("http_request", map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
	}
}

// companyScope pulls the optional company identifier off the request.
func companyScope(c *gin.Context) string {
	if q := c.Query("company"); q != "" {
		return q
	}
	return c.GetHeader("X-Company-Id")
}

// writeError maps the domain error taxonomy onto status codes; any
// unrecognized error is a persistence failure.
func writeError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Reason})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist changes"})
	}
}
