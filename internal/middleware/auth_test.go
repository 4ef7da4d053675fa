package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Koto-ptts/japanese-cbt-app/internal/config"
	"github.com/Koto-ptts/japanese-cbt-app/internal/model"
	"github.com/Koto-ptts/japanese-cbt-app/internal/repository"
	"github.com/Koto-ptts/japanese-cbt-app/internal/util"
	"github.com/Koto-ptts/japanese-cbt-app/pkg/database"
	"github.com/Koto-ptts/japanese-cbt-app/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testSecret = "test-secret-key-0123456789abcdef"

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = testSecret
	cfg.JWT.ExpireTime = time.Hour
	return cfg
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger.Log = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newAuthRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(cfg), func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		util.Success(c, gin.H{"user_id": claims.UserID})
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	cfg := newTestConfig()
	router := newAuthRouter(cfg)

	user := &model.User{Email: "s@example.com"}
	user.ID = 7
	token, err := util.GenerateJWT(user, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	// Authorization ヘッダ
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("bearer token: status = %d, want 200", w.Code)
	}

	// クエリパラメータでも通る
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("query token: status = %d, want 200", w.Code)
	}

	// トークンなし
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", w.Code)
	}

	// 不正トークン
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer invalid.token.here")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", w.Code)
	}
}

func TestTeacherRequired(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	profileRepo := repository.NewProfileRepository(db)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/teacher-only", AuthMiddleware(cfg), TeacherRequired(profileRepo), func(c *gin.Context) {
		util.Success(c, gin.H{})
	})

	request := func(userID uint) *httptest.ResponseRecorder {
		user := &model.User{Email: "x@example.com"}
		user.ID = userID
		token, err := util.GenerateJWT(user, testSecret, time.Hour)
		if err != nil {
			t.Fatalf("GenerateJWT: %v", err)
		}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/teacher-only", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		return w
	}

	teacher := &model.User{Name: "教員", Email: "t@example.com", Password: "x"}
	if err := db.Create(teacher).Error; err != nil {
		t.Fatalf("seed teacher: %v", err)
	}
	if err := db.Create(&model.UserProfile{UserID: teacher.ID, IsTeacher: true}).Error; err != nil {
		t.Fatalf("seed teacher profile: %v", err)
	}
	student := &model.User{Name: "生徒", Email: "s@example.com", Password: "x"}
	if err := db.Create(student).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}
	if err := db.Create(&model.UserProfile{UserID: student.ID, IsTeacher: false}).Error; err != nil {
		t.Fatalf("seed student profile: %v", err)
	}
	noProfile := &model.User{Name: "未設定", Email: "n@example.com", Password: "x"}
	if err := db.Create(noProfile).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	if w := request(teacher.ID); w.Code != http.StatusOK {
		t.Errorf("teacher: status = %d, want 200", w.Code)
	}
	if w := request(student.ID); w.Code != http.StatusForbidden {
		t.Errorf("student: status = %d, want 403", w.Code)
	}

	// プロファイル未作成はダッシュボードと違い遅延作成せず拒否する
	w := request(noProfile.ID)
	if w.Code != http.StatusForbidden {
		t.Errorf("no profile: status = %d, want 403", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["success"] != false || body["error_kind"] != "forbidden" {
		t.Errorf("body = %v", body)
	}

	// ロールはリクエスト時点の値で判定される（昇格は即時反映）
	if err := db.Model(&model.UserProfile{}).Where("user_id = ?", student.ID).Update("is_teacher", true).Error; err != nil {
		t.Fatalf("promote student: %v", err)
	}
	if w := request(student.ID); w.Code != http.StatusOK {
		t.Errorf("promoted student: status = %d, want 200", w.Code)
	}
}
