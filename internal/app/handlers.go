package app

import (
	"gorm.io/gorm"

	httpH "github.com/yungbote/membership-registry/internal/http/handlers"
	"github.com/yungbote/membership-registry/internal/platform/logger"
)

type Handlers struct {
	Health     *httpH.HealthHandler
	References *httpH.ReferenceHandler
	Documents  *httpH.DocumentHandler
	Status     *httpH.StatusHandler
	Parishes   *httpH.MembershipHandler
	Structures *httpH.MembershipHandler
	Directions *httpH.DirectionHandler
	Attach     *httpH.AttachmentHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, aggs Aggregates) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     httpH.NewHealthHandler(db),
		References: httpH.NewReferenceHandler(aggs.Resolver),
		Documents:  httpH.NewDocumentHandler(aggs.Documents),
		Status:     httpH.NewStatusHandler(aggs.Status),
		Parishes:   httpH.NewMembershipHandler(aggs.Parishes),
		Structures: httpH.NewMembershipHandler(aggs.Structures),
		Directions: httpH.NewDirectionHandler(aggs.Directions, aggs.Mandates),
		Attach:     httpH.NewAttachmentHandler(aggs.Attach),
	}
}
