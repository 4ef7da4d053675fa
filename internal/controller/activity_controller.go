package controller

import (
	"encoding/json"

	"github.com/Koto-ptts/japanese-cbt-app/internal/service"
	"github.com/Koto-ptts/japanese-cbt-app/internal/util"
	"github.com/gin-gonic/gin"
)

type ActivityController struct {
	service *service.ActivityService
}

func NewActivityController(s *service.ActivityService) *ActivityController {
	return &ActivityController{service: s}
}

type LogActivityRequest struct {
	TextID       *uint           `json:"text_id"`
	QuestionID   *uint           `json:"question_id"`
	ActivityType string          `json:"activity_type" binding:"required"`
	Details      json.RawMessage `json:"details"`
}

// LogActivity godoc
// @Summary 学習活動をログに記録
// @Description 追記専用。activity_type は任意の文字列を受け付ける
// @Tags 活動ログ
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body LogActivityRequest true "活動内容"
// @Router /api/log-activity [post]
func (c *ActivityController) LogActivity(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req LogActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.FailWith(ctx, util.KindValidation, err.Error())
		return
	}

	entry, err := c.service.Log(user.UserID, req.TextID, req.QuestionID, req.ActivityType, req.Details)
	if err != nil {
		util.Fail(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"log_id": entry.ID})
}
