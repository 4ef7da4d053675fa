package controller

import (
	"errors"
	"strconv"

	"github.com/Koto-ptts/japanese-cbt-app/internal/repository"
	"github.com/Koto-ptts/japanese-cbt-app/internal/service"
	"github.com/Koto-ptts/japanese-cbt-app/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ContentController struct {
	service     *service.ContentService
	profileRepo *repository.ProfileRepository
}

func NewContentController(s *service.ContentService, profileRepo *repository.ProfileRepository) *ContentController {
	return &ContentController{service: s, profileRepo: profileRepo}
}

type SubmitResponseRequest struct {
	ResponseText     string `json:"response_text"`
	SelectedChoiceID *uint  `json:"selected_choice"`
}

// GetTextDetail godoc
// @Summary 文章詳細を取得
// @Description セッションを取得（無ければ作成）し、解答フェーズのときのみ問題リストを返す
// @Tags 文章
// @Produce json
// @Security ApiKeyAuth
// @Param textId path int true "文章ID"
// @Router /api/texts/{textId} [get]
func (c *ContentController) GetTextDetail(ctx *gin.Context) {
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

	// 教員は注釈を持たないため、閲覧時は注釈リストを空にする
	isTeacher := false
	if profile, err := c.profileRepo.FindByUserID(user.UserID); err == nil {
		isTeacher = profile.IsTeacher
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		util.Fail(ctx, err)
		return
	}

	detail, err := c.service.GetTextDetail(user.UserID, uint(textID), isTeacher)
	if err != nil {
		util.Fail(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"text":          detail.Text,
		"current_phase": detail.CurrentPhase,
		"session":       detail.Session,
		"questions":     detail.Questions,
		"annotations":   detail.Annotations,
	})
}

// GetQuestionDetail godoc
// @Summary 問題詳細を取得
// @Description 解答フェーズ以外からのアクセスは拒否される
// @Tags 問題
// @Produce json
// @Security ApiKeyAuth
// @Param questionId path int true "問題ID"
// @Router /api/questions/{questionId} [get]
func (c *ContentController) GetQuestionDetail(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	questionID, err := strconv.ParseUint(ctx.Param("questionId"), 10, 32)
	if err != nil {
		util.FailWith(ctx, util.KindValidation, "無効な問題IDです")
		return
	}

	detail, err := c.service.GetQuestionDetail(user.UserID, uint(questionID))
	if err != nil {
		util.Fail(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"question": detail.Question,
		"response": detail.Response,
		"session":  detail.Session,
	})
}

// SubmitResponse godoc
// @Summary 回答を提出
// @Description (生徒, 問題) につき1行。再提出は同じ行を上書きする
// @Tags 問題
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param questionId path int true "問題ID"
// @Param body body SubmitResponseRequest true "回答内容"
// @Router /api/questions/{questionId}/response [post]
func (c *ContentController) SubmitResponse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	questionID, err := strconv.ParseUint(ctx.Param("questionId"), 10, 32)
	if err != nil {
		util.FailWith(ctx, util.KindValidation, "無効な問題IDです")
		return
	}

	var req SubmitResponseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.FailWith(ctx, util.KindValidation, err.Error())
		return
	}

	response, err := c.service.SubmitResponse(user.UserID, uint(questionID), req.ResponseText, req.SelectedChoiceID)
	if err != nil {
		util.Fail(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"response_id": response.ID})
}
