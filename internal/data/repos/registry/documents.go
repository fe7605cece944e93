package registry

import (
	"fmt"

	types "github.com/yungbote/membership-registry/internal/domain/registry"
	"github.com/yungbote/membership-registry/internal/platform/dbctx"
	"github.com/yungbote/membership-registry/internal/platform/logger"
	"gorm.io/gorm"
)

// DocumentRepo loads any registered document kind by DocumentType.
type DocumentRepo interface {
	// GetLive loads one live document. A missing or soft-deleted row yields (nil, nil).
	GetLive(dbc dbctx.Context, t types.DocumentType, id int64) (types.Document, error)
	// GetAny loads one document regardless of its deletion state.
	GetAny(dbc dbctx.Context, t types.DocumentType, id int64) (types.Document, error)
	// ListLiveByIDs loads the projection columns of live documents of one type in a single query.
	ListLiveByIDs(dbc dbctx.Context, t types.DocumentType, ids []int64) ([]types.Document, error)
}

type documentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentRepo(db *gorm.DB, baseLog *logger.Logger) DocumentRepo {
	return &documentRepo{db: db, log: baseLog.With("repo", "DocumentRepo")}
}

func (r *documentRepo) GetLive(dbc dbctx.Context, t types.DocumentType, id int64) (types.Document, error) {
	switch t {
	case types.DocumentTypePerson:
		return liveDocument[types.Person](dbc, r.db, id)
	case types.DocumentTypeParish:
		return liveDocument[types.Parish](dbc, r.db, id)
	case types.DocumentTypeStructure:
		return liveDocument[types.Structure](dbc, r.db, id)
	case types.DocumentTypeNation:
		return liveDocument[types.Nation](dbc, r.db, id)
	case types.DocumentTypeContinent:
		return liveDocument[types.Continent](dbc, r.db, id)
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedDocumentType, t)
	}
}

func (r *documentRepo) GetAny(dbc dbctx.Context, t types.DocumentType, id int64) (types.Document, error) {
	where := Where{"id": id}
	switch t {
	case types.DocumentTypePerson:
		return anyDocument[types.Person](dbc, r.db, where)
	case types.DocumentTypeParish:
		return anyDocument[types.Parish](dbc, r.db, where)
	case types.DocumentTypeStructure:
		return anyDocument[types.Structure](dbc, r.db, where)
	case types.DocumentTypeNation:
		return anyDocument[types.Nation](dbc, r.db, where)
	case types.DocumentTypeContinent:
		return anyDocument[types.Continent](dbc, r.db, where)
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedDocumentType, t)
	}
}

func (r *documentRepo) ListLiveByIDs(dbc dbctx.Context, t types.DocumentType, ids []int64) ([]types.Document, error) {
	shape, err := types.ResolveProjection(t)
	if err != nil {
		return nil, err
	}
	switch t {
	case types.DocumentTypePerson:
		return liveDocuments[types.Person](dbc, r.db, ids, shape.Columns)
	case types.DocumentTypeParish:
		return liveDocuments[types.Parish](dbc, r.db, ids, shape.Columns)
	case types.DocumentTypeStructure:
		return liveDocuments[types.Structure](dbc, r.db, ids, shape.Columns)
	case types.DocumentTypeNation:
		return liveDocuments[types.Nation](dbc, r.db, ids, shape.Columns)
	case types.DocumentTypeContinent:
		return liveDocuments[types.Continent](dbc, r.db, ids, shape.Columns)
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedDocumentType, t)
	}
}

type documentPtr[T any] interface {
	*T
	types.Document
}

func liveDocument[T any, PT documentPtr[T]](dbc dbctx.Context, db *gorm.DB, id int64) (types.Document, error) {
	row, err := GetLive[T](dbc, db, id)
	if err != nil || row == nil {
		return nil, err
	}
	return PT(row), nil
}

func anyDocument[T any, PT documentPtr[T]](dbc dbctx.Context, db *gorm.DB, where Where) (types.Document, error) {
	row, err := FindAny[T](dbc, db, where)
	if err != nil || row == nil {
		return nil, err
	}
	return PT(row), nil
}

func liveDocuments[T any, PT documentPtr[T]](dbc dbctx.Context, db *gorm.DB, ids []int64, columns []string) ([]types.Document, error) {
	rows, err := ListLiveByIDs[T](dbc, db, ids, columns)
	if err != nil {
		return nil, err
	}
	out := make([]types.Document, 0, len(rows))
	for _, row := range rows {
		out = append(out, PT(row))
	}
	return out, nil
}
