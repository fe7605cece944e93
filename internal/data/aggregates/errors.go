package aggregates

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	domainagg "github.com/yungbote/membership-registry/internal/domain/aggregates"
	types "github.com/yungbote/membership-registry/internal/domain/registry"
	"gorm.io/gorm"
)

var (
	// ErrValidation indicates caller input validation failure.
	ErrValidation = errors.New("aggregate validation")
	// ErrInvariant indicates invariant rule violation.
	ErrInvariant = errors.New("aggregate invariant violation")
	// ErrConflict indicates optimistic/concurrency conflict.
	ErrConflict = errors.New("aggregate conflict")
	// ErrRetryable indicates transient retryable failure.
	ErrRetryable = errors.New("aggregate retryable")
	// ErrNotFound indicates a missing or soft-deleted row.
	ErrNotFound = errors.New("aggregate not found")
	// ErrPrecondition indicates a dependency in the wrong lifecycle state.
	ErrPrecondition = errors.New("aggregate precondition failed")

	ErrDuplicate        = errors.New("live relationship already exists")
	ErrDateWindow       = errors.New("end date precedes start date")
	ErrMissingValidator = errors.New("validation requires a recenseur")
	ErrChainBroken      = errors.New("matriculation code chain broken")
)

func tag(sentinel error, msg string) error {
	return errors.Join(sentinel, errors.New(strings.TrimSpace(msg)))
}

// ValidationError tags an error as validation failure.
func ValidationError(msg string) error { return tag(ErrValidation, msg) }

// InvariantError tags an error as invariant violation.
func InvariantError(msg string) error { return tag(ErrInvariant, msg) }

// ConflictError tags an error as conflict failure.
func ConflictError(msg string) error { return tag(ErrConflict, msg) }

// RetryableError tags an error as retryable failure.
func RetryableError(msg string) error { return tag(ErrRetryable, msg) }

func NotFoundError(msg string) error         { return tag(ErrNotFound, msg) }
func PreconditionError(msg string) error     { return tag(ErrPrecondition, msg) }
func DuplicateError(msg string) error        { return tag(ErrDuplicate, msg) }
func DateWindowError(msg string) error       { return tag(ErrDateWindow, msg) }
func MissingValidatorError(msg string) error { return tag(ErrMissingValidator, msg) }
func ChainBrokenError(msg string) error      { return tag(ErrChainBroken, msg) }

// MapError maps infrastructure/domain failures into aggregate error codes.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var aggErr *domainagg.Error
	if errors.As(err, &aggErr) {
		return err
	}
	switch {
	case errors.Is(err, ErrValidation):
		return domainagg.Wrap(domainagg.CodeValidation, op, err)
	case errors.Is(err, ErrInvariant), errors.Is(err, types.ErrPersonIDOutOfRange):
		return domainagg.Wrap(domainagg.CodeInvariantViolation, op, err)
	case errors.Is(err, ErrConflict):
		return domainagg.Wrap(domainagg.CodeConflict, op, err)
	case errors.Is(err, ErrRetryable):
		return domainagg.Wrap(domainagg.CodeRetryable, op, err)
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return domainagg.Wrap(domainagg.CodeNotFound, op, err)
	case errors.Is(err, ErrPrecondition):
		return domainagg.Wrap(domainagg.CodePreconditionFailed, op, err)
	case errors.Is(err, ErrDuplicate):
		return domainagg.Wrap(domainagg.CodeDuplicate, op, err)
	case errors.Is(err, ErrDateWindow):
		return domainagg.Wrap(domainagg.CodeInvalidDateWindow, op, err)
	case errors.Is(err, ErrMissingValidator):
		return domainagg.Wrap(domainagg.CodeMissingValidator, op, err)
	case errors.Is(err, ErrChainBroken), errors.Is(err, types.ErrInvalidNationCode):
		return domainagg.Wrap(domainagg.CodeChainBroken, op, err)
	case errors.Is(err, types.ErrInvalidDocumentType), errors.Is(err, types.ErrUnsupportedDocumentType):
		return domainagg.Wrap(domainagg.CodeInvalidReferenceType, op, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return domainagg.Wrap(domainagg.CodeRetryable, op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505":
			return domainagg.Wrap(domainagg.CodeConflict, op, err) // unique_violation
		case "23503":
			return domainagg.Wrap(domainagg.CodePreconditionFailed, op, err) // foreign_key_violation
		case "23514":
			return domainagg.Wrap(domainagg.CodeInvariantViolation, op, err) // check_violation
		case "40001", "40P01", "55P03":
			return domainagg.Wrap(domainagg.CodeRetryable, op, err) // serialization/deadlock/lock_not_available
		}
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "duplicate key"),
		strings.Contains(msg, "already exists"),
		strings.Contains(msg, "unique constraint failed"):
		return domainagg.Wrap(domainagg.CodeConflict, op, err)
	case strings.Contains(msg, "deadlock"),
		strings.Contains(msg, "serialization"),
		strings.Contains(msg, "timeout"),
		strings.Contains(msg, "database is locked"),
		strings.Contains(msg, "temporar"):
		return domainagg.Wrap(domainagg.CodeRetryable, op, err)
	default:
		return domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
}
