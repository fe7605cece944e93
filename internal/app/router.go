package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/membership-registry/internal/http"
	"github.com/yungbote/membership-registry/internal/observability"
	"github.com/yungbote/membership-registry/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		Log:               log,
		Metrics:           metrics,
		ServiceName:       cfg.Otel.ServiceName,
		CORSOrigins:       cfg.CORSOrigins,
		HealthHandler:     handlers.Health,
		ReferenceHandler:  handlers.References,
		DocumentHandler:   handlers.Documents,
		StatusHandler:     handlers.Status,
		ParishHandler:     handlers.Parishes,
		StructureHandler:  handlers.Structures,
		DirectionHandler:  handlers.Directions,
		AttachmentHandler: handlers.Attach,
	})
}
