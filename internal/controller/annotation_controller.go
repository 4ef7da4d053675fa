package controller

import (
	"strconv"

	"github.com/Koto-ptts/japanese-cbt-app/internal/model"
	"github.com/Koto-ptts/japanese-cbt-app/internal/service"
	"github.com/Koto-ptts/japanese-cbt-app/internal/util"
	"github.com/gin-gonic/gin"
)

type AnnotationController struct {
	service *service.AnnotationService
}

func NewAnnotationController(s *service.AnnotationService) *AnnotationController {
	return &AnnotationController{service: s}
}

type SaveAnnotationRequest struct {
	TextID         uint   `json:"text_id" binding:"required"`
	AnnotationType string `json:"annotation_type" binding:"required"`
	StartPosition  int    `json:"start_position"`
	EndPosition    int    `json:"end_position"`
	Content        string `json:"content"`
}

type UpdateAnnotationRequest struct {
	Content string `json:"content"`
}

// SaveAnnotation godoc
// @Summary 注釈を保存
// @Description ハイライト・注釈・メモを文字オフセット範囲に紐付けて保存する
// @Tags 注釈
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body SaveAnnotationRequest true "注釈内容"
// @Router /api/save-annotation [post]
func (c *AnnotationController) SaveAnnotation(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SaveAnnotationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.FailWith(ctx, util.KindValidation, err.Error())
		return
	}

	annotation, err := c.service.Create(
		user.UserID,
		req.TextID,
		model.AnnotationType(req.AnnotationType),
		req.StartPosition,
		req.EndPosition,
		req.Content,
	)
	if err != nil {
		util.Fail(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"annotation_id": annotation.ID})
}

// GetAnnotations godoc
// @Summary 注釈一覧を取得
// @Description 自分の注釈を開始位置昇順で返す
// @Tags 注釈
// @Produce json
// @Security ApiKeyAuth
// @Param textId path int true "文章ID"
// @Router /api/get-annotations/{textId} [get]
func (c *AnnotationController) GetAnnotations(ctx *gin.Context) {
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

	annotations, err := c.service.ListForText(user.UserID, uint(textID))
	if err != nil {
		util.Fail(ctx, err)
		return
	}

	items := make([]gin.H, 0, len(annotations))
	for _, a := range annotations {
		items = append(items, gin.H{
			"id":             a.ID,
			"type":           a.AnnotationType,
			"start_position": a.StartPosition,
			"end_position":   a.EndPosition,
			"content":        a.Content,
			"created_at":     a.CreatedAt,
		})
	}

	util.Success(ctx, gin.H{"annotations": items})
}

// UpdateAnnotation godoc
// @Summary 注釈を更新
// @Description 内容のみ更新できる
// @Tags 注釈
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param annotationId path int true "注釈ID"
// @Param body body UpdateAnnotationRequest true "更新内容"
// @Router /api/update-annotation/{annotationId} [post]
func (c *AnnotationController) UpdateAnnotation(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	annotationID, err := strconv.ParseUint(ctx.Param("annotationId"), 10, 32)
	if err != nil {
		util.FailWith(ctx, util.KindValidation, "無効な注釈IDです")
		return
	}

	var req UpdateAnnotationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.FailWith(ctx, util.KindValidation, err.Error())
		return
	}

	annotation, err := c.service.UpdateContent(user.UserID, uint(annotationID), req.Content)
	if err != nil {
		util.Fail(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"annotation_id": annotation.ID})
}

// DeleteAnnotation godoc
// @Summary 注釈を削除
// @Tags 注釈
// @Produce json
// @Security ApiKeyAuth
// @Param annotationId path int true "注釈ID"
// @Router /api/delete-annotation/{annotationId} [delete]
func (c *AnnotationController) DeleteAnnotation(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	annotationID, err := strconv.ParseUint(ctx.Param("annotationId"), 10, 32)
	if err != nil {
		util.FailWith(ctx, util.KindValidation, "無効な注釈IDです")
		return
	}

	if err := c.service.Delete(user.UserID, uint(annotationID)); err != nil {
		util.Fail(ctx, err)
		return
	}

	util.Success(ctx, gin.H{})
}
