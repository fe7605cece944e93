package app

import (
	"go.opentelemetry.io/otel"
	"gorm.io/gorm"

	"github.com/yungbote/membership-registry/internal/data/aggregates"
	"github.com/yungbote/membership-registry/internal/data/lifecycle"
	"github.com/yungbote/membership-registry/internal/data/references"
	"github.com/yungbote/membership-registry/internal/data/repos"
	domainagg "github.com/yungbote/membership-registry/internal/domain/aggregates"
	"github.com/yungbote/membership-registry/internal/observability"
	"github.com/yungbote/membership-registry/internal/platform/logger"
)

type Aggregates struct {
	Resolver *references.Resolver

	Parishes   domainagg.MembershipAggregate
	Structures domainagg.MembershipAggregate
	Directions domainagg.DirectionAggregate
	Mandates   domainagg.MandateAggregate
	Documents  domainagg.LifecycleAggregate
	Status     domainagg.StatusAggregate
	Attach     domainagg.AttachmentAggregate
}

func wireAggregates(db *gorm.DB, log *logger.Logger, cfg Config, set repos.Set, metrics *observability.Metrics) Aggregates {
	log.Info("Wiring aggregates...")
	clock := cfg.Clock()
	base := aggregates.BaseDeps{
		DB:       db,
		Log:      log,
		Runner:   aggregates.NewGormTxRunner(db),
		Hooks:    aggregates.NewObservabilityHooks(metrics),
		CASGuard: aggregates.NewCASGuard(db),
		Clock:    clock,
		Tracer:   otel.Tracer(cfg.Otel.ServiceName + "/aggregates"),
	}
	resolver := references.NewResolver(set.Documents, log)
	mgr := lifecycle.NewManager(db, log, clock)

	return Aggregates{
		Resolver:   resolver,
		Parishes:   aggregates.NewParishMembershipAggregate(base, set.PersonParish, resolver, mgr),
		Structures: aggregates.NewStructureMembershipAggregate(base, set.PersonStructure, resolver, mgr),
		Directions: aggregates.NewDirectionAggregate(aggregates.DirectionAggregateDeps{
			Base:       base,
			Directions: set.Directions,
			Resolver:   resolver,
			Lifecycle:  mgr,
		}),
		Mandates: aggregates.NewMandateAggregate(aggregates.MandateAggregateDeps{
			Base:          base,
			Directions:    set.Directions,
			Mandates:      set.Mandates,
			ReferenceData: set.ReferenceData,
			Resolver:      resolver,
			Lifecycle:     mgr,
		}),
		Documents: aggregates.NewLifecycleAggregate(aggregates.LifecycleAggregateDeps{
			Base:      base,
			Documents: set.Documents,
			Lifecycle: mgr,
		}),
		Status: aggregates.NewStatusAggregate(aggregates.StatusAggregateDeps{
			Base:          base,
			Persons:       set.Persons,
			ReferenceData: set.ReferenceData,
			Attachments:   set.Attachments,
			StatusChanges: set.StatusChanges,
			Resolver:      resolver,
		}),
		Attach: aggregates.NewAttachmentAggregate(aggregates.AttachmentAggregateDeps{
			Base:          base,
			Attachments:   set.Attachments,
			ReferenceData: set.ReferenceData,
			Resolver:      resolver,
		}),
	}
}
