package aggregates

import (
	"testing"

	"github.com/yungbote/membership-registry/internal/data/lifecycle"
	"github.com/yungbote/membership-registry/internal/data/references"
	"github.com/yungbote/membership-registry/internal/data/repos"
	repotest "github.com/yungbote/membership-registry/internal/data/repos/testutil"
	domainagg "github.com/yungbote/membership-registry/internal/domain/aggregates"
	"gorm.io/gorm"
)

type registryFixture struct {
	db    *gorm.DB
	repos repos.Set
	hooks *spyHooks

	parishes   domainagg.MembershipAggregate
	structures domainagg.MembershipAggregate
	mandates   domainagg.MandateAggregate
	directions domainagg.DirectionAggregate
	documents  domainagg.LifecycleAggregate
	status     domainagg.StatusAggregate
	attach     domainagg.AttachmentAggregate
}

func newRegistryFixture(t *testing.T) *registryFixture {
	t.Helper()
	db := repotest.DB(t)
	log := repotest.Logger(t)
	set := repos.NewSet(db, log)
	hooks := &spyHooks{}
	base := BaseDeps{
		DB:       db,
		Log:      log,
		Runner:   NewGormTxRunner(db),
		Hooks:    hooks,
		CASGuard: NewCASGuard(db),
		Clock:    repotest.Clock,
	}
	resolver := references.NewResolver(set.Documents, log)
	mgr := lifecycle.NewManager(db, log, repotest.Clock)

	return &registryFixture{
		db:         db,
		repos:      set,
		hooks:      hooks,
		parishes:   NewParishMembershipAggregate(base, set.PersonParish, resolver, mgr),
		structures: NewStructureMembershipAggregate(base, set.PersonStructure, resolver, mgr),
		mandates: NewMandateAggregate(MandateAggregateDeps{
			Base:          base,
			Directions:    set.Directions,
			Mandates:      set.Mandates,
			ReferenceData: set.ReferenceData,
			Resolver:      resolver,
			Lifecycle:     mgr,
		}),
		directions: NewDirectionAggregate(DirectionAggregateDeps{
			Base:       base,
			Directions: set.Directions,
			Resolver:   resolver,
			Lifecycle:  mgr,
		}),
		documents: NewLifecycleAggregate(LifecycleAggregateDeps{
			Base:      base,
			Documents: set.Documents,
			Lifecycle: mgr,
		}),
		status: NewStatusAggregate(StatusAggregateDeps{
			Base:          base,
			Persons:       set.Persons,
			ReferenceData: set.ReferenceData,
			Attachments:   set.Attachments,
			StatusChanges: set.StatusChanges,
			Resolver:      resolver,
		}),
		attach: NewAttachmentAggregate(AttachmentAggregateDeps{
			Base:          base,
			Attachments:   set.Attachments,
			ReferenceData: set.ReferenceData,
			Resolver:      resolver,
		}),
	}
}

func requireCode(t *testing.T, err error, code domainagg.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	if !domainagg.IsCode(err, code) {
		t.Fatalf("expected %s, got %q (%v)", code, domainagg.CodeOf(err), err)
	}
}
