package controller

import (
	"github.com/Koto-ptts/japanese-cbt-app/internal/service"
	"github.com/Koto-ptts/japanese-cbt-app/internal/util"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register godoc
// @Summary 生徒アカウント登録
// @Tags 認証
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "登録情報"
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.FailWith(ctx, util.KindValidation, err.Error())
		return
	}

	user, err := c.authService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		util.Fail(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"user_id": user.ID})
}

// Login godoc
// @Summary ログイン
// @Tags 認証
// @Accept json
// @Produce json
// @Param body body LoginRequest true "認証情報"
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.FailWith(ctx, util.KindValidation, err.Error())
		return
	}

	token, err := c.authService.Login(req.Email, req.Password)
	if err != nil {
		util.Fail(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"token": token})
}
