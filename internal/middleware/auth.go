package middleware

import (
	"errors"
	"strings"

	"github.com/Koto-ptts/japanese-cbt-app/internal/config"
	"github.com/Koto-ptts/japanese-cbt-app/internal/repository"
	"github.com/Koto-ptts/japanese-cbt-app/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// TeacherRequired 教員ゲート。ロールはキャッシュせず毎リクエストでストレージから
// 読み直す。プロファイルが存在しないユーザーは（ダッシュボードの遅延作成とは違い）
// ここでは forbidden で拒否する。
func TeacherRequired(profileRepo *repository.ProfileRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		profile, err := profileRepo.FindByUserID(claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				util.FailWith(c, util.KindForbidden, "教員権限が必要です")
			} else {
				util.Fail(c, err)
			}
			c.Abort()
			return
		}

		if !profile.IsTeacher {
			util.FailWith(c, util.KindForbidden, "教員権限が必要です")
			c.Abort()
			return
		}

		c.Set("profile", profile)
		c.Next()
	}
}

type UserActivityRepo interface {
	UpdateLastSeen(userID uint) error
}

func ActivityMiddleware(repo UserActivityRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims != nil {
			// 非同期更新、本流をブロックしない
			go repo.UpdateLastSeen(claims.UserID)
		}
		c.Next()
	}
}
