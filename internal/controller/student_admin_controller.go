package controller

import (
	"strconv"

	"github.com/Koto-ptts/japanese-cbt-app/internal/service"
	"github.com/Koto-ptts/japanese-cbt-app/internal/util"
	"github.com/gin-gonic/gin"
)

// StudentAdminController 教員専用の生徒アカウント管理。
// ルーティング側で middleware.TeacherRequired が掛かっている。
type StudentAdminController struct {
	service *service.UserService
}

func NewStudentAdminController(s *service.UserService) *StudentAdminController {
	return &StudentAdminController{service: s}
}

type CreateStudentRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type UpdateStudentRequest struct {
	Name        string `json:"name"`
	NewPassword string `json:"new_password"`
}

// ListStudents godoc
// @Summary 生徒一覧を取得
// @Tags 生徒管理
// @Produce json
// @Security ApiKeyAuth
// @Router /api/teacher/students [get]
func (c *StudentAdminController) ListStudents(ctx *gin.Context) {
	students, err := c.service.ListStudents()
	if err != nil {
		util.Fail(ctx, err)
		return
	}

	items := make([]gin.H, 0, len(students))
	for _, s := range students {
		items = append(items, gin.H{
			"id":         s.ID,
			"name":       s.Name,
			"email":      s.Email,
			"last_login": s.LastLogin,
		})
	}

	util.Success(ctx, gin.H{"students": items})
}

// CreateStudent godoc
// @Summary 生徒アカウントを作成
// @Tags 生徒管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CreateStudentRequest true "生徒情報"
// @Router /api/teacher/students [post]
func (c *StudentAdminController) CreateStudent(ctx *gin.Context) {
	var req CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.FailWith(ctx, util.KindValidation, err.Error())
		return
	}

	student, err := c.service.CreateStudent(req.Name, req.Email, req.Password)
	if err != nil {
		util.Fail(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"student_id": student.ID})
}

// UpdateStudent godoc
// @Summary 生徒アカウントを編集
// @Description 名前の変更とパスワード再設定（入力された場合のみ）
// @Tags 生徒管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param studentId path int true "生徒ID"
// @Param body body UpdateStudentRequest true "更新内容"
// @Router /api/teacher/students/{studentId} [put]
func (c *StudentAdminController) UpdateStudent(ctx *gin.Context) {
	studentID, err := strconv.ParseUint(ctx.Param("studentId"), 10, 32)
	if err != nil {
		util.FailWith(ctx, util.KindValidation, "無効な生徒IDです")
		return
	}

	var req UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.FailWith(ctx, util.KindValidation, err.Error())
		return
	}

	student, err := c.service.UpdateStudent(uint(studentID), req.Name, req.NewPassword)
	if err != nil {
		util.Fail(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"student_id": student.ID})
}
