package aggregates_test

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/membership-registry/internal/data/aggregates"
	aggtest "github.com/yungbote/membership-registry/internal/data/aggregates/testutil"
	"github.com/yungbote/membership-registry/internal/data/lifecycle"
	"github.com/yungbote/membership-registry/internal/data/references"
	"github.com/yungbote/membership-registry/internal/data/repos"
	repotest "github.com/yungbote/membership-registry/internal/data/repos/testutil"
	domainagg "github.com/yungbote/membership-registry/internal/domain/aggregates"
	types "github.com/yungbote/membership-registry/internal/domain/registry"
)

func TestTransitionCommitFailureLeavesPersonPending(t *testing.T) {
	db := repotest.DB(t)
	log := repotest.Logger(t)
	set := repos.NewSet(db, log)

	repotest.SeedStatuses(t, db)
	repotest.SeedPersonTypes(t, db)
	recenseur := repotest.SeedPerson(t, db, 0, types.PersonTypePracticing)
	person := repotest.SeedPerson(t, db, 125, types.PersonTypePracticing)
	parish := repotest.SeedParish(t, db, "Saint Joseph")
	continent := repotest.SeedContinent(t, db, "Afrique")
	nation := repotest.SeedNation(t, db, continent.ID, "RDC", "cd")
	repotest.SeedAddress(t, db, types.DocumentRef{Type: types.DocumentTypeParish, ID: parish.ID}, nation.ID)
	repotest.SeedPersonParish(t, db, person.ID, parish.ID, nil)

	runner := &aggtest.InjectedTxRunner{DB: db, FailCommit: errors.New("commit failed")}
	hooks := &aggtest.HooksRecorder{}
	status := aggregates.NewStatusAggregate(aggregates.StatusAggregateDeps{
		Base: aggregates.BaseDeps{
			DB:     db,
			Log:    log,
			Runner: runner,
			Hooks:  hooks,
			Clock:  repotest.Clock,
		},
		Persons:       set.Persons,
		ReferenceData: set.ReferenceData,
		Attachments:   set.Attachments,
		StatusChanges: set.StatusChanges,
		Resolver:      references.NewResolver(set.Documents, log),
	})

	_, err := status.Transition(context.Background(), domainagg.TransitionStatusInput{
		PersonID:       person.ID,
		TargetStatusID: types.StatusValidated,
		RecenseurID:    &recenseur.ID,
	})
	if !domainagg.IsCode(err, domainagg.CodeInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if runner.RollbackCalls != 1 || runner.CommitCalls != 0 {
		t.Fatalf("unexpected counters commit=%d rollback=%d", runner.CommitCalls, runner.RollbackCalls)
	}

	var p types.Person
	if err := db.First(&p, person.ID).Error; err != nil {
		t.Fatalf("reload person: %v", err)
	}
	if p.DocumentStatusID != types.StatusPending || p.CodeMatriculation != nil || p.RecenseurID != nil {
		t.Fatalf("rolled back transition must leave the person untouched: %+v", p)
	}
	var audits int64
	if err := db.Model(&types.StatusChange{}).Where("person_id = ?", person.ID).Count(&audits).Error; err != nil {
		t.Fatalf("count audit rows: %v", err)
	}
	if audits != 0 {
		t.Fatalf("rolled back transition must not leave an audit row, got %d", audits)
	}

	if len(hooks.Operations) != 1 {
		t.Fatalf("expected one observed operation, got %d", len(hooks.Operations))
	}
	if got := hooks.Operations[0]; got.Name != "Registry.Status.Transition" || got.Status != string(domainagg.CodeInternal) {
		t.Fatalf("unexpected operation event: %+v", got)
	}
}

func TestMembershipAddBeginTimeoutCountsRetry(t *testing.T) {
	db := repotest.DB(t)
	log := repotest.Logger(t)
	set := repos.NewSet(db, log)
	person := repotest.SeedPerson(t, db, 0, types.PersonTypePracticing)
	parish := repotest.SeedParish(t, db, "Sainte Anne")

	runner := &aggtest.InjectedTxRunner{DB: db, FailBegin: context.DeadlineExceeded}
	hooks := &aggtest.HooksRecorder{}
	base := aggregates.BaseDeps{DB: db, Log: log, Runner: runner, Hooks: hooks, Clock: repotest.Clock}
	parishes := aggregates.NewParishMembershipAggregate(
		base,
		set.PersonParish,
		references.NewResolver(set.Documents, log),
		lifecycle.NewManager(db, log, repotest.Clock),
	)

	_, err := parishes.Add(context.Background(), domainagg.MembershipInput{PersonID: person.ID, TargetID: parish.ID})
	if !domainagg.IsCode(err, domainagg.CodeRetryable) {
		t.Fatalf("expected retryable error, got %v", err)
	}
	if len(hooks.Retries) != 1 {
		t.Fatalf("expected one retry signal, got %v", hooks.Retries)
	}

	var rows int64
	if err := db.Model(&types.PersonParish{}).Count(&rows).Error; err != nil {
		t.Fatalf("count memberships: %v", err)
	}
	if rows != 0 {
		t.Fatalf("no membership may be written when the transaction never began, got %d", rows)
	}
}
