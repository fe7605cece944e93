package registry

import (
	types "github.com/yungbote/membership-registry/internal/domain/registry"
	"github.com/yungbote/membership-registry/internal/platform/dbctx"
	"github.com/yungbote/membership-registry/internal/platform/logger"
	"gorm.io/gorm"
)

// ReferenceDataRepo reads the configured lookup tables.
type ReferenceDataRepo interface {
	StatusByID(dbc dbctx.Context, id int64) (*types.DocumentStatus, error)
	FunctionByID(dbc dbctx.Context, id int64) (*types.Function, error)
	NationByID(dbc dbctx.Context, id int64) (*types.Nation, error)
}

type referenceDataRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReferenceDataRepo(db *gorm.DB, baseLog *logger.Logger) ReferenceDataRepo {
	return &referenceDataRepo{db: db, log: baseLog.With("repo", "ReferenceDataRepo")}
}

func (r *referenceDataRepo) StatusByID(dbc dbctx.Context, id int64) (*types.DocumentStatus, error) {
	return GetLive[types.DocumentStatus](dbc, r.db, id)
}

func (r *referenceDataRepo) FunctionByID(dbc dbctx.Context, id int64) (*types.Function, error) {
	return GetLive[types.Function](dbc, r.db, id)
}

func (r *referenceDataRepo) NationByID(dbc dbctx.Context, id int64) (*types.Nation, error) {
	return GetLive[types.Nation](dbc, r.db, id)
}

type StatusChangeRepo interface {
	Create(dbc dbctx.Context, row *types.StatusChange) (*types.StatusChange, error)
}

type statusChangeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStatusChangeRepo(db *gorm.DB, baseLog *logger.Logger) StatusChangeRepo {
	return &statusChangeRepo{db: db, log: baseLog.With("repo", "StatusChangeRepo")}
}

func (r *statusChangeRepo) Create(dbc dbctx.Context, row *types.StatusChange) (*types.StatusChange, error) {
	rows, err := create(dbc, r.db, []*types.StatusChange{row})
	if err != nil {
		return nil, err
	}
	return rows[0], nil
}
