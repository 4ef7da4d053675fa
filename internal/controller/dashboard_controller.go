package controller

import (
	"github.com/Koto-ptts/japanese-cbt-app/internal/service"
	"github.com/Koto-ptts/japanese-cbt-app/internal/util"
	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	service *service.UserService
}

func NewDashboardController(s *service.UserService) *DashboardController {
	return &DashboardController{service: s}
}

// GetDashboard godoc
// @Summary ダッシュボードを取得
// @Description プロファイルが無いユーザーはここで生徒として遅延作成される
// @Tags ダッシュボード
// @Produce json
// @Security ApiKeyAuth
// @Router /api/dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	dashboard, err := c.service.GetDashboard(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.Fail(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"is_teacher":    dashboard.IsTeacher,
		"texts":         dashboard.Texts,
		"student_count": dashboard.StudentCount,
	})
}
