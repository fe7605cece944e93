package registry

import (
	"time"

	types "github.com/yungbote/membership-registry/internal/domain/registry"
	"github.com/yungbote/membership-registry/internal/platform/dbctx"
	"github.com/yungbote/membership-registry/internal/platform/logger"
	"gorm.io/gorm"
)

type DirectionRepo interface {
	Create(dbc dbctx.Context, row *types.Direction) (*types.Direction, error)
	GetByID(dbc dbctx.Context, id int64) (*types.Direction, error)
	GetAny(dbc dbctx.Context, id int64) (*types.Direction, error)
	List(dbc dbctx.Context, structureID *int64) ([]*types.Direction, error)
	UpdateFields(dbc dbctx.Context, id int64, updates map[string]any, now time.Time) (bool, error)
}

type directionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDirectionRepo(db *gorm.DB, baseLog *logger.Logger) DirectionRepo {
	return &directionRepo{db: db, log: baseLog.With("repo", "DirectionRepo")}
}

func (r *directionRepo) Create(dbc dbctx.Context, row *types.Direction) (*types.Direction, error) {
	rows, err := create(dbc, r.db, []*types.Direction{row})
	if err != nil {
		return nil, err
	}
	return rows[0], nil
}

func (r *directionRepo) GetByID(dbc dbctx.Context, id int64) (*types.Direction, error) {
	return GetLive[types.Direction](dbc, r.db, id)
}

func (r *directionRepo) GetAny(dbc dbctx.Context, id int64) (*types.Direction, error) {
	return FindAny[types.Direction](dbc, r.db, Where{"id": id})
}

func (r *directionRepo) List(dbc dbctx.Context, structureID *int64) ([]*types.Direction, error) {
	where := Where{}
	if structureID != nil {
		where["structure_id"] = *structureID
	}
	return ListLive[types.Direction](dbc, r.db, where)
}

func (r *directionRepo) UpdateFields(dbc dbctx.Context, id int64, updates map[string]any, now time.Time) (bool, error) {
	return UpdateLive(dbc, r.db, &types.Direction{}, id, updates, now)
}

type MandateRepo interface {
	Create(dbc dbctx.Context, row *types.Mandate) (*types.Mandate, error)
	GetByID(dbc dbctx.Context, id int64) (*types.Mandate, error)
	GetAny(dbc dbctx.Context, id int64) (*types.Mandate, error)
	// FindHolder returns the (direction, person, function) row whatever its deletion state.
	FindHolder(dbc dbctx.Context, directionID, personID, functionID int64) (*types.Mandate, error)
	UpdateFields(dbc dbctx.Context, id int64, updates map[string]any, now time.Time) (bool, error)
}

type mandateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMandateRepo(db *gorm.DB, baseLog *logger.Logger) MandateRepo {
	return &mandateRepo{db: db, log: baseLog.With("repo", "MandateRepo")}
}

func (r *mandateRepo) Create(dbc dbctx.Context, row *types.Mandate) (*types.Mandate, error) {
	rows, err := create(dbc, r.db, []*types.Mandate{row})
	if err != nil {
		return nil, err
	}
	return rows[0], nil
}

func (r *mandateRepo) GetByID(dbc dbctx.Context, id int64) (*types.Mandate, error) {
	return GetLive[types.Mandate](dbc, r.db, id)
}

func (r *mandateRepo) GetAny(dbc dbctx.Context, id int64) (*types.Mandate, error) {
	return FindAny[types.Mandate](dbc, r.db, Where{"id": id})
}

func (r *mandateRepo) FindHolder(dbc dbctx.Context, directionID, personID, functionID int64) (*types.Mandate, error) {
	return FindAny[types.Mandate](dbc, r.db, Where{
		"direction_id": directionID,
		"person_id":    personID,
		"function_id":  functionID,
	})
}

func (r *mandateRepo) UpdateFields(dbc dbctx.Context, id int64, updates map[string]any, now time.Time) (bool, error) {
	return UpdateLive(dbc, r.db, &types.Mandate{}, id, updates, now)
}
