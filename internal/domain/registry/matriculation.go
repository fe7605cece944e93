package registry

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// MatriculationIDWidth is the zero-padded width of the person id part.
	MatriculationIDWidth = 8
	// MatriculationCodeLength is the persisted length of a full code.
	MatriculationCodeLength = 2 + MatriculationIDWidth
)

var (
	ErrInvalidNationCode  = errors.New("nation code must be two letters")
	ErrPersonIDOutOfRange = errors.New("person id does not fit the matriculation width")
)

// BuildMatriculationCode concatenates the upper-cased nation code with the zero-padded person id.
func BuildMatriculationCode(isoAlpha2 string, personID int64) (string, error) {
	iso := strings.ToUpper(strings.TrimSpace(isoAlpha2))
	if len(iso) != 2 || !isASCIILetter(iso[0]) || !isASCIILetter(iso[1]) {
		return "", fmt.Errorf("%w: %q", ErrInvalidNationCode, isoAlpha2)
	}
	if personID <= 0 {
		return "", fmt.Errorf("%w: %d", ErrPersonIDOutOfRange, personID)
	}
	digits := fmt.Sprintf("%0*d", MatriculationIDWidth, personID)
	if len(digits) > MatriculationIDWidth {
		return "", fmt.Errorf("%w: %d", ErrPersonIDOutOfRange, personID)
	}
	return iso + digits, nil
}

func isASCIILetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
