package app

import (
	"strings"

	"github.com/Koto-ptts/japanese-cbt-app/internal/config"
	"github.com/Koto-ptts/japanese-cbt-app/internal/middleware"
	"github.com/Koto-ptts/japanese-cbt-app/internal/util"
	"github.com/Koto-ptts/japanese-cbt-app/pkg/monitoring"
	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// HTTP メソッド違いは 405 ではなく {"success": false} で応答する
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(ctx *gin.Context) {
		required := "POST"
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/delete-") {
			required = "DELETE"
		}
		util.MethodNotAllowed(ctx, required)
	})

	// 1. 公開ルート（ログイン不要）
	a.registerPublicRoutes(router, c)

	// 2. 認証必須ルート
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c, repos)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/dashboard", c.dashboard.GetDashboard)

	// 文章・問題・回答
	rg.GET("/texts/:textId", c.content.GetTextDetail)
	rg.GET("/questions/:questionId", c.content.GetQuestionDetail)
	rg.POST("/questions/:questionId/response", c.content.SubmitResponse)

	// 注釈
	rg.POST("/save-annotation", c.annotation.SaveAnnotation)
	rg.GET("/get-annotations/:textId", c.annotation.GetAnnotations)
	rg.POST("/update-annotation/:annotationId", c.annotation.UpdateAnnotation)
	rg.DELETE("/delete-annotation/:annotationId", c.annotation.DeleteAnnotation)

	// アクティブリーディング分析
	rg.POST("/save-active-reading-content", c.activeReading.SaveContent)
	rg.GET("/get-active-reading-content/:textId", c.activeReading.GetContent)
	rg.POST("/update-active-reading-content/:contentId", c.activeReading.UpdateContent)
	rg.DELETE("/delete-active-reading-content/:contentId", c.activeReading.DeleteContent)

	// 段落定義
	rg.POST("/save-paragraph-definition", c.paragraph.SaveParagraphDefinition)
	rg.GET("/get-paragraph-definitions/:textId", c.paragraph.GetParagraphDefinitions)
	rg.DELETE("/delete-paragraph-definition/:textId/:paragraphNumber", c.paragraph.DeleteParagraphDefinition)
	rg.POST("/save-all-paragraphs", c.paragraph.SaveAllParagraphs)
	rg.GET("/get-all-memos/:textId", c.paragraph.GetAllMemos)

	// 読解セッション
	rg.GET("/get-reading-session/:textId", c.session.GetReadingSession)
	rg.POST("/transition-to-answering", c.session.TransitionToAnswering)
	rg.POST("/transition-to-reading", c.session.TransitionToReading)

	// 活動ログ
	rg.POST("/log-activity", c.activity.LogActivity)
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers, repos *repositories) {
	teacher := rg.Group("/teacher")
	teacher.Use(middleware.TeacherRequired(repos.profile))
	{
		teacher.GET("/students", c.studentAdmin.ListStudents)
		teacher.POST("/students", c.studentAdmin.CreateStudent)
		teacher.PUT("/students/:studentId", c.studentAdmin.UpdateStudent)
	}
}
