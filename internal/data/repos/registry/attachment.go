package registry

import (
	types "github.com/yungbote/membership-registry/internal/domain/registry"
	"github.com/yungbote/membership-registry/internal/platform/dbctx"
	"github.com/yungbote/membership-registry/internal/platform/logger"
	"gorm.io/gorm"
)

// AttachmentRepo stores rows that point at a document through a polymorphic reference.
type AttachmentRepo interface {
	CreateAddress(dbc dbctx.Context, row *types.Address) (*types.Address, error)
	CreateContact(dbc dbctx.Context, row *types.Contact) (*types.Contact, error)
	CreateFile(dbc dbctx.Context, row *types.File) (*types.File, error)
	// FirstAddress returns the oldest live address attached to ref.
	FirstAddress(dbc dbctx.Context, ref types.DocumentRef) (*types.Address, error)
	ListAddresses(dbc dbctx.Context, ref types.DocumentRef) ([]*types.Address, error)
	// DeleteAddressPermanently and DeleteContactPermanently remove value objects physically.
	DeleteAddressPermanently(dbc dbctx.Context, id int64) (bool, error)
	DeleteContactPermanently(dbc dbctx.Context, id int64) (bool, error)
}

type attachmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAttachmentRepo(db *gorm.DB, baseLog *logger.Logger) AttachmentRepo {
	return &attachmentRepo{db: db, log: baseLog.With("repo", "AttachmentRepo")}
}

func refWhere(ref types.DocumentRef) Where {
	return Where{"document_type": ref.Type, "document_id": ref.ID}
}

func (r *attachmentRepo) CreateAddress(dbc dbctx.Context, row *types.Address) (*types.Address, error) {
	rows, err := create(dbc, r.db, []*types.Address{row})
	if err != nil {
		return nil, err
	}
	return rows[0], nil
}

func (r *attachmentRepo) CreateContact(dbc dbctx.Context, row *types.Contact) (*types.Contact, error) {
	rows, err := create(dbc, r.db, []*types.Contact{row})
	if err != nil {
		return nil, err
	}
	return rows[0], nil
}

func (r *attachmentRepo) CreateFile(dbc dbctx.Context, row *types.File) (*types.File, error) {
	rows, err := create(dbc, r.db, []*types.File{row})
	if err != nil {
		return nil, err
	}
	return rows[0], nil
}

func (r *attachmentRepo) FirstAddress(dbc dbctx.Context, ref types.DocumentRef) (*types.Address, error) {
	rows, err := r.ListAddresses(dbc, ref)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (r *attachmentRepo) ListAddresses(dbc dbctx.Context, ref types.DocumentRef) ([]*types.Address, error) {
	return ListLive[types.Address](dbc, r.db, refWhere(ref))
}

func (r *attachmentRepo) DeleteAddressPermanently(dbc dbctx.Context, id int64) (bool, error) {
	return deletePermanently(dbc, r.db, &types.Address{}, id)
}

func (r *attachmentRepo) DeleteContactPermanently(dbc dbctx.Context, id int64) (bool, error) {
	return deletePermanently(dbc, r.db, &types.Contact{}, id)
}

func deletePermanently(dbc dbctx.Context, db *gorm.DB, model any, id int64) (bool, error) {
	h, err := handle(dbc, db)
	if err != nil {
		return false, err
	}
	res := h.Unscoped().Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
