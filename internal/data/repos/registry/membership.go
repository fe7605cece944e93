package registry

import (
	"time"

	types "github.com/yungbote/membership-registry/internal/domain/registry"
	"github.com/yungbote/membership-registry/internal/platform/dbctx"
	"github.com/yungbote/membership-registry/internal/platform/logger"
	"gorm.io/gorm"
)

type membershipPtr[T any] interface {
	*T
	types.Membership
}

// MembershipRepo serves one membership table (person_parish or person_structure).
type MembershipRepo[T any] interface {
	Kind() types.MembershipKind
	Create(dbc dbctx.Context, row *T) (*T, error)
	// FindPair returns the (person, target) row whatever its deletion state.
	FindPair(dbc dbctx.Context, personID, targetID int64) (*T, error)
	UpdateWindow(dbc dbctx.Context, id int64, w types.MembershipWindow, now time.Time) (bool, error)
}

type membershipRepo[T any, PT membershipPtr[T]] struct {
	db   *gorm.DB
	log  *logger.Logger
	kind types.MembershipKind
}

func newMembershipRepo[T any, PT membershipPtr[T]](db *gorm.DB, baseLog *logger.Logger, kind types.MembershipKind, name string) *membershipRepo[T, PT] {
	return &membershipRepo[T, PT]{db: db, log: baseLog.With("repo", name), kind: kind}
}

func NewPersonParishRepo(db *gorm.DB, baseLog *logger.Logger) MembershipRepo[types.PersonParish] {
	return newMembershipRepo[types.PersonParish](db, baseLog, types.ParishMembership, "PersonParishRepo")
}

func NewPersonStructureRepo(db *gorm.DB, baseLog *logger.Logger) MembershipRepo[types.PersonStructure] {
	return newMembershipRepo[types.PersonStructure](db, baseLog, types.StructureMembership, "PersonStructureRepo")
}

func (r *membershipRepo[T, PT]) Kind() types.MembershipKind { return r.kind }

func (r *membershipRepo[T, PT]) Create(dbc dbctx.Context, row *T) (*T, error) {
	rows, err := create(dbc, r.db, []*T{row})
	if err != nil {
		return nil, err
	}
	return rows[0], nil
}

func (r *membershipRepo[T, PT]) FindPair(dbc dbctx.Context, personID, targetID int64) (*T, error) {
	return FindAny[T](dbc, r.db, Where{"person_id": personID, r.kind.TargetColumn: targetID})
}

func (r *membershipRepo[T, PT]) UpdateWindow(dbc dbctx.Context, id int64, w types.MembershipWindow, now time.Time) (bool, error) {
	var model T
	return UpdateLive(dbc, r.db, &model, id, map[string]any{
		"joined_on": w.JoinedOn,
		"left_on":   w.LeftOn,
		"is_active": w.Active,
	}, now)
}

// LatestActiveParish returns the most recently created live, active parish membership of personID.
// A row whose left_on fell before today is skipped even if its stored flag was not refreshed.
func LatestActiveParish(dbc dbctx.Context, db *gorm.DB, personID int64, today time.Time) (*types.PersonParish, error) {
	h, err := handle(dbc, db)
	if err != nil {
		return nil, err
	}
	var rows []*types.PersonParish
	err = h.Scopes(Live).
		Where("person_id = ? AND is_active = ?", personID, true).
		Where("left_on IS NULL OR left_on >= ?", types.CivilDate(today)).
		Order("created_at DESC").
		Order("id DESC").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}
