package util

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"app error", NotFoundErr("missing"), KindNotFound},
		{"forbidden", ForbiddenErr("no"), KindForbidden},
		{"validation", ValidationErr("bad"), KindValidation},
		{"conflict", ConflictErr("dup"), KindConflict},
		{"wrapped app error", fmt.Errorf("outer: %w", ForbiddenErr("no")), KindForbidden},
		{"gorm not found", gorm.ErrRecordNotFound, KindNotFound},
		{"gorm duplicate", gorm.ErrDuplicatedKey, KindConflict},
		{"plain error", errors.New("boom"), KindInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := KindOf(tc.err); got != tc.want {
				t.Errorf("KindOf = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestWrapDB(t *testing.T) {
	if WrapDB(nil, "x") != nil {
		t.Error("nil must pass through")
	}

	err := WrapDB(gorm.ErrRecordNotFound, "注釈が見つかりません")
	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("not an AppError: %T", err)
	}
	if appErr.Kind != KindNotFound || appErr.Message != "注釈が見つかりません" {
		t.Errorf("got %+v", appErr)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Error("cause not preserved")
	}

	err = WrapDB(gorm.ErrDuplicatedKey, "x")
	if KindOf(err) != KindConflict {
		t.Errorf("duplicate key: kind = %v, want conflict", KindOf(err))
	}

	// 既にAppErrorなら二重に包まない
	original := ForbiddenErr("そのまま")
	wrapped := WrapDB(original, "別のメッセージ")
	if wrapped != error(original) {
		t.Error("existing AppError must pass through unchanged")
	}

	err = WrapDB(errors.New("connection reset"), "x")
	if KindOf(err) != KindInternal {
		t.Errorf("unknown error: kind = %v, want internal", KindOf(err))
	}
	if err.Error() != "internal server error" {
		t.Errorf("internal message leaked: %q", err.Error())
	}
}

func TestStatusForKinds(t *testing.T) {
	cases := map[ErrorKind]int{
		KindNotFound:   404,
		KindForbidden:  403,
		KindValidation: 400,
		KindConflict:   409,
		KindInternal:   500,
	}
	for kind, want := range cases {
		if got := statusFor(kind); got != want {
			t.Errorf("statusFor(%v) = %d, want %d", kind, got, want)
		}
	}
}
