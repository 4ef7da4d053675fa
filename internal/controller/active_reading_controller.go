package controller

import (
	"encoding/json"
	"strconv"

	"github.com/Koto-ptts/japanese-cbt-app/internal/model"
	"github.com/Koto-ptts/japanese-cbt-app/internal/service"
	"github.com/Koto-ptts/japanese-cbt-app/internal/util"
	"github.com/gin-gonic/gin"
)

type ActiveReadingController struct {
	service *service.ActiveReadingService
}

func NewActiveReadingController(s *service.ActiveReadingService) *ActiveReadingController {
	return &ActiveReadingController{service: s}
}

type SaveActiveReadingRequest struct {
	TextID      uint            `json:"text_id" binding:"required"`
	ContentType string          `json:"content_type" binding:"required"`
	Title       string          `json:"title" binding:"required"`
	Data        json.RawMessage `json:"data"`
}

// title と data は含まれたフィールドだけ上書きする部分更新
type UpdateActiveReadingRequest struct {
	Title *string         `json:"title"`
	Data  json.RawMessage `json:"data"`
}

// SaveContent godoc
// @Summary 積極的読み分析を保存
// @Description 論理構造・因果マップ・概念マップなどの分析コンテンツを保存する
// @Tags 積極的読み分析
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body SaveActiveReadingRequest true "分析内容"
// @Router /api/save-active-reading-content [post]
func (c *ActiveReadingController) SaveContent(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SaveActiveReadingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.FailWith(ctx, util.KindValidation, err.Error())
		return
	}

	content, err := c.service.Create(
		user.UserID,
		req.TextID,
		model.ActiveReadingType(req.ContentType),
		req.Title,
		req.Data,
	)
	if err != nil {
		util.Fail(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"content_id": content.ID})
}

// GetContent godoc
// @Summary 積極的読み分析一覧を取得
// @Tags 積極的読み分析
// @Produce json
// @Security ApiKeyAuth
// @Param textId path int true "文章ID"
// @Router /api/get-active-reading-content/{textId} [get]
func (c *ActiveReadingController) GetContent(ctx *gin.Context) {
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

	contents, err := c.service.ListForText(user.UserID, uint(textID))
	if err != nil {
		util.Fail(ctx, err)
		return
	}

	items := make([]gin.H, 0, len(contents))
	for _, item := range contents {
		items = append(items, gin.H{
			"id":           item.ID,
			"content_type": item.ContentType,
			"title":        item.Title,
			"data":         item.Data,
			"created_at":   item.CreatedAt,
		})
	}

	util.Success(ctx, gin.H{"content": items})
}

// UpdateContent godoc
// @Summary 積極的読み分析を更新
// @Description title / data のうちリクエストに含まれたものだけ上書きする
// @Tags 積極的読み分析
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param contentId path string true "コンテンツID"
// @Param body body UpdateActiveReadingRequest true "更新内容"
// @Router /api/update-active-reading-content/{contentId} [post]
func (c *ActiveReadingController) UpdateContent(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateActiveReadingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.FailWith(ctx, util.KindValidation, err.Error())
		return
	}

	_, err := c.service.Update(user.UserID, ctx.Param("contentId"), req.Title, req.Data)
	if err != nil {
		util.Fail(ctx, err)
		return
	}

	util.Success(ctx, gin.H{})
}

// DeleteContent godoc
// @Summary 積極的読み分析を削除
// @Tags 積極的読み分析
// @Produce json
// @Security ApiKeyAuth
// @Param contentId path string true "コンテンツID"
// @Router /api/delete-active-reading-content/{contentId} [delete]
func (c *ActiveReadingController) DeleteContent(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.service.Delete(user.UserID, ctx.Param("contentId")); err != nil {
		util.Fail(ctx, err)
		return
	}

	util.Success(ctx, gin.H{})
}
