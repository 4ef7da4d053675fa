package util

import (
	"errors"

	"gorm.io/gorm"
)

// ErrorKind 機械可読なエラー種別。レスポンスの error_kind にそのまま載る。
type ErrorKind string

const (
	KindNotFound   ErrorKind = "not_found"
	KindForbidden  ErrorKind = "forbidden"
	KindValidation ErrorKind = "validation"
	KindConflict   ErrorKind = "conflict"
	KindInternal   ErrorKind = "internal"
)

// AppError 人間可読メッセージ＋種別を持つエラー。
// 所有権違反と不存在は区別せず、どちらも not_found として返す。
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFoundErr(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func ForbiddenErr(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

func ValidationErr(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func ConflictErr(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func InternalErr(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: "internal server error", Err: err}
}

// KindOf gormのストレージエラーも含めて種別に正規化する。
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return KindNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return KindConflict
	}
	return KindInternal
}

// WrapDB リポジトリから上がってきたエラーを境界用のAppErrorへ変換する。
// notFoundMsg は不存在（または非所有）時のメッセージ。
func WrapDB(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &AppError{Kind: KindNotFound, Message: notFoundMsg, Err: err}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &AppError{Kind: KindConflict, Message: "duplicate record", Err: err}
	default:
		return &AppError{Kind: KindInternal, Message: "internal server error", Err: err}
	}
}
