package controller

import (
	"strconv"

	"github.com/Koto-ptts/japanese-cbt-app/internal/service"
	"github.com/Koto-ptts/japanese-cbt-app/internal/util"
	"github.com/gin-gonic/gin"
)

type ParagraphController struct {
	service *service.ParagraphService
}

func NewParagraphController(s *service.ParagraphService) *ParagraphController {
	return &ParagraphController{service: s}
}

type SaveParagraphRequest struct {
	TextID          uint   `json:"text_id" binding:"required"`
	ParagraphNumber int    `json:"paragraph_number" binding:"required"`
	Content         string `json:"content"`
	StartOffset     int    `json:"start_offset"`
	EndOffset       int    `json:"end_offset"`
}

type SaveAllParagraphsRequest struct {
	TextID     uint                     `json:"text_id" binding:"required"`
	Paragraphs []service.ParagraphInput `json:"paragraphs"`
}

// SaveParagraphDefinition godoc
// @Summary ユーザー定義段落を保存
// @Description 同じ段落番号への二重保存は conflict で失敗する
// @Tags 段落定義
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body SaveParagraphRequest true "段落定義"
// @Router /api/save-paragraph-definition [post]
func (c *ParagraphController) SaveParagraphDefinition(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SaveParagraphRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.FailWith(ctx, util.KindValidation, err.Error())
		return
	}

	paragraph, err := c.service.SaveOne(user.UserID, req.TextID, req.ParagraphNumber, req.Content, req.StartOffset, req.EndOffset)
	if err != nil {
		util.Fail(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"paragraph_id": paragraph.ID})
}

// GetParagraphDefinitions godoc
// @Summary ユーザー定義段落一覧を取得
// @Tags 段落定義
// @Produce json
// @Security ApiKeyAuth
// @Param textId path int true "文章ID"
// @Router /api/get-paragraph-definitions/{textId} [get]
func (c *ParagraphController) GetParagraphDefinitions(ctx *gin.Context) {
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

	paragraphs, err := c.service.ListForText(user.UserID, uint(textID))
	if err != nil {
		util.Fail(ctx, err)
		return
	}

	items := make([]gin.H, 0, len(paragraphs))
	for _, p := range paragraphs {
		items = append(items, gin.H{
			"number":      p.ParagraphNumber,
			"content":     p.Content,
			"startOffset": p.StartOffset,
			"endOffset":   p.EndOffset,
			"createdAt":   p.CreatedAt,
		})
	}

	util.Success(ctx, gin.H{"paragraphs": items})
}

// DeleteParagraphDefinition godoc
// @Summary ユーザー定義段落を削除
// @Tags 段落定義
// @Produce json
// @Security ApiKeyAuth
// @Param textId path int true "文章ID"
// @Param paragraphNumber path int true "段落番号"
// @Router /api/delete-paragraph-definition/{textId}/{paragraphNumber} [delete]
func (c *ParagraphController) DeleteParagraphDefinition(ctx *gin.Context) {
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
	paragraphNumber, err := strconv.Atoi(ctx.Param("paragraphNumber"))
	if err != nil {
		util.FailWith(ctx, util.KindValidation, "無効な段落番号です")
		return
	}

	if err := c.service.DeleteOne(user.UserID, uint(textID), paragraphNumber); err != nil {
		util.Fail(ctx, err)
		return
	}

	util.Success(ctx, gin.H{})
}

// SaveAllParagraphs godoc
// @Summary 全段落を一括保存
// @Description 既存の段落定義を全削除し、リクエストのリストで置き換える（全置換・原子的）
// @Tags 段落定義
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body SaveAllParagraphsRequest true "段落リスト"
// @Router /api/save-all-paragraphs [post]
func (c *ParagraphController) SaveAllParagraphs(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SaveAllParagraphsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.FailWith(ctx, util.KindValidation, err.Error())
		return
	}

	if err := c.service.ReplaceAll(user.UserID, req.TextID, req.Paragraphs); err != nil {
		util.Fail(ctx, err)
		return
	}

	util.Success(ctx, gin.H{})
}

// GetAllMemos godoc
// @Summary 全メモを取得
// @Description 段落定義と積極的読み分析を正規化して1つのリストで返す
// @Tags 段落定義
// @Produce json
// @Security ApiKeyAuth
// @Param textId path int true "文章ID"
// @Router /api/get-all-memos/{textId} [get]
func (c *ParagraphController) GetAllMemos(ctx *gin.Context) {
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

	memos, err := c.service.AllMemos(user.UserID, uint(textID))
	if err != nil {
		util.Fail(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"memos": memos})
}
