package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/membership-registry/internal/http/handlers"
	httpMW "github.com/yungbote/membership-registry/internal/http/middleware"
	"github.com/yungbote/membership-registry/internal/observability"
	"github.com/yungbote/membership-registry/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	ServiceName string
	CORSOrigins []string

	HealthHandler     *httpH.HealthHandler
	ReferenceHandler  *httpH.ReferenceHandler
	DocumentHandler   *httpH.DocumentHandler
	StatusHandler     *httpH.StatusHandler
	ParishHandler     *httpH.MembershipHandler
	StructureHandler  *httpH.MembershipHandler
	DirectionHandler  *httpH.DirectionHandler
	AttachmentHandler *httpH.AttachmentHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = observability.DefaultServiceName
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")

	// References
	if cfg.ReferenceHandler != nil {
		api.GET("/references/:type/:id", cfg.ReferenceHandler.Resolve)
		api.POST("/references/resolve", cfg.ReferenceHandler.ResolveBatch)
	}

	// Document lifecycle
	if cfg.DocumentHandler != nil {
		api.DELETE("/documents/:type/:id", cfg.DocumentHandler.Delete)
		api.PUT("/documents/:type/:id/restore", cfg.DocumentHandler.Restore)
	}

	// Attachments
	if cfg.AttachmentHandler != nil {
		api.POST("/documents/:type/:id/addresses", cfg.AttachmentHandler.AttachAddress)
		api.POST("/documents/:type/:id/contacts", cfg.AttachmentHandler.AttachContact)
		api.POST("/documents/:type/:id/files", cfg.AttachmentHandler.RegisterFile)
		api.DELETE("/addresses/:id", cfg.AttachmentHandler.RemoveAddress)
		api.DELETE("/contacts/:id", cfg.AttachmentHandler.RemoveContact)
	}

	// Persons
	if cfg.StatusHandler != nil {
		api.PUT("/persons/:id/status", cfg.StatusHandler.Transition)
	}
	mountMemberships(api.Group("/persons/:id/parishes"), cfg.ParishHandler)
	mountMemberships(api.Group("/persons/:id/structures"), cfg.StructureHandler)

	// Directions and mandates
	if cfg.DirectionHandler != nil {
		api.GET("/directions", cfg.DirectionHandler.List)
		api.POST("/directions", cfg.DirectionHandler.Create)
		api.PUT("/directions/:id", cfg.DirectionHandler.Update)
		api.DELETE("/directions/:id", cfg.DirectionHandler.Delete)
		api.PUT("/directions/:id/restore", cfg.DirectionHandler.Restore)

		api.POST("/directions/:id/mandates", cfg.DirectionHandler.CreateMandate)
		api.PUT("/directions/:id/mandates/:mandate_id", cfg.DirectionHandler.UpdateMandate)
		api.DELETE("/directions/:id/mandates/:mandate_id", cfg.DirectionHandler.DeleteMandate)
		api.PUT("/directions/:id/mandates/:mandate_id/restore", cfg.DirectionHandler.RestoreMandate)
	}

	return r
}

func mountMemberships(g *gin.RouterGroup, h *httpH.MembershipHandler) {
	if h == nil {
		return
	}
	g.POST("", h.Add)
	g.PUT("/:target_id", h.Update)
	g.DELETE("/:target_id", h.Remove)
	g.PUT("/:target_id/restore", h.Restore)
}
