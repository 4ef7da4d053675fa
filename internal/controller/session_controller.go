package controller

import (
	"strconv"

	"github.com/Koto-ptts/japanese-cbt-app/internal/service"
	"github.com/Koto-ptts/japanese-cbt-app/internal/util"
	"github.com/gin-gonic/gin"
)

type SessionController struct {
	service *service.SessionService
}

func NewSessionController(s *service.SessionService) *SessionController {
	return &SessionController{service: s}
}

type TransitionRequest struct {
	TextID uint `json:"text_id" binding:"required"`
}

// GetReadingSession godoc
// @Summary 読解セッションを取得
// @Description 初回アクセス時は reading フェーズのセッションを作成して返す
// @Tags フェーズ制御
// @Produce json
// @Security ApiKeyAuth
// @Param textId path int true "文章ID"
// @Router /api/get-reading-session/{textId} [get]
func (c *SessionController) GetReadingSession(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	textID, err := strconv.ParseUint(ctx.Param("textId"), 10, 32)
	if err != nil {
		util.FailWith(ctx, util.KindValidation, "無効な文章IDです")
		return
	}

	session, err := c.service.GetOrCreate(user.UserID, uint(textID))
	if err != nil {
		util.Fail(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"session": gin.H{
			"id":                 session.ID,
			"current_phase":      session.CurrentPhase,
			"reading_start_time": session.ReadingStartTime,
			"reading_end_time":   session.ReadingEndTime,
		},
	})
}

// TransitionToAnswering godoc
// @Summary 解答フェーズへ移行
// @Description セッションが存在しない場合は失敗する（自動作成しない）
// @Tags フェーズ制御
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body TransitionRequest true "対象文章"
// @Router /api/transition-to-answering [post]
func (c *SessionController) TransitionToAnswering(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req TransitionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.FailWith(ctx, util.KindValidation, err.Error())
		return
	}

	session, err := c.service.TransitionToAnswering(user.UserID, req.TextID)
	if err != nil {
		util.Fail(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"session_id": session.ID})
}

// TransitionToReading godoc
// @Summary 読解フェーズへ戻す
// @Tags フェーズ制御
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body TransitionRequest true "対象文章"
// @Router /api/transition-to-reading [post]
func (c *SessionController) TransitionToReading(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req TransitionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.FailWith(ctx, util.KindValidation, err.Error())
		return
	}

	session, err := c.service.TransitionToReading(user.UserID, req.TextID)
	if err != nil {
		util.Fail(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"session_id": session.ID})
}
