package registry

import (
	types "github.com/yungbote/membership-registry/internal/domain/registry"
	"github.com/yungbote/membership-registry/internal/platform/dbctx"
	"github.com/yungbote/membership-registry/internal/platform/logger"
	"gorm.io/gorm"
)

type PersonRepo interface {
	// LockByID loads a live person and holds its row until the transaction ends.
	LockByID(dbc dbctx.Context, id int64) (*types.Person, error)
}

type personRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPersonRepo(db *gorm.DB, baseLog *logger.Logger) PersonRepo {
	return &personRepo{db: db, log: baseLog.With("repo", "PersonRepo")}
}

func (r *personRepo) LockByID(dbc dbctx.Context, id int64) (*types.Person, error) {
	return LockLive[types.Person](dbc, id)
}
