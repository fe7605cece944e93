package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	domainagg "github.com/yungbote/membership-registry/internal/domain/aggregates"
)

func TestFromErrorMapsAggregateCodes(t *testing.T) {
	cases := []struct {
		code domainagg.ErrorCode
		want int
	}{
		{domainagg.CodeInvalidReferenceType, http.StatusUnprocessableEntity},
		{domainagg.CodeNotFound, http.StatusNotFound},
		{domainagg.CodeDuplicate, http.StatusConflict},
		{domainagg.CodeInvalidDateWindow, http.StatusBadRequest},
		{domainagg.CodeMissingValidator, http.StatusBadRequest},
		{domainagg.CodeChainBroken, http.StatusBadRequest},
		{domainagg.CodePreconditionFailed, http.StatusPreconditionFailed},
		{domainagg.CodeRetryable, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		err := fmt.Errorf("handler: %w", domainagg.NewError(tc.code, "op", "boom", nil))
		got := FromError(err, "fallback")
		if got.Status != tc.want || got.Code != string(tc.code) {
			t.Fatalf("%s: want=%d/%s got=%d/%s", tc.code, tc.want, tc.code, got.Status, got.Code)
		}
	}
}

func TestFromErrorFallbacks(t *testing.T) {
	if FromError(nil, "x") != nil {
		t.Fatalf("nil error must map to nil")
	}
	got := FromError(errors.New("disk"), "load_failed")
	if got.Status != http.StatusInternalServerError || got.Code != "load_failed" {
		t.Fatalf("plain error: got=%d/%s", got.Status, got.Code)
	}
	internal := FromError(domainagg.NewError(domainagg.CodeInternal, "op", "boom", nil), "write_failed")
	if internal.Status != http.StatusInternalServerError || internal.Code != "write_failed" {
		t.Fatalf("internal error: got=%d/%s", internal.Status, internal.Code)
	}
	pre := New(http.StatusTeapot, "teapot", nil)
	if FromError(pre, "x") != pre {
		t.Fatalf("api errors must pass through")
	}
}
