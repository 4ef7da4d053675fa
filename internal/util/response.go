package util

import (
	"net/http"

	"github.com/Koto-ptts/japanese-cbt-app/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 統一レスポンス: {success:true, ...} / {success:false, error, error_kind}

func Success(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func statusFor(kind ErrorKind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Fail エラー種別からHTTPステータスを決めて統一ペイロードを返す。
func Fail(c *gin.Context, err error) {
	kind := KindOf(err)
	message := err.Error()
	if kind == KindInternal {
		logger.Log.Error("internal server error",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		message = "internal server error"
	}
	c.JSON(statusFor(kind), gin.H{
		"success":    false,
		"error":      message,
		"error_kind": string(kind),
	})
}

func FailWith(c *gin.Context, kind ErrorKind, message string) {
	Fail(c, &AppError{Kind: kind, Message: message})
}

func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success":    false,
		"error":      "authentication required",
		"error_kind": "unauthorized",
	})
}

// MethodNotAllowed 固定動詞以外でのアクセス。"<verb> method required" 形式を返す。
func MethodNotAllowed(c *gin.Context, required string) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{
		"success": false,
		"error":   required + " method required",
	})
}
