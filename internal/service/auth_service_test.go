package service

import (
	"testing"
	"time"

	"github.com/Koto-ptts/japanese-cbt-app/internal/config"
	"github.com/Koto-ptts/japanese-cbt-app/internal/model"
	"github.com/Koto-ptts/japanese-cbt-app/internal/repository"
	"github.com/Koto-ptts/japanese-cbt-app/internal/util"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-key-0123456789abcdef"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(db), repository.NewProfileRepository(db), cfg)
}

func TestRegisterCreatesStudent(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user, err := svc.Register("新入生", "new@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Password == "password123" {
		t.Error("password stored in plain text")
	}

	// 自己登録は常に生徒
	var profile model.UserProfile
	if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		t.Fatalf("profile not created: %v", err)
	}
	if profile.IsTeacher {
		t.Error("self registration must not create a teacher")
	}
}

func TestRegisterValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	cases := []struct {
		name            string
		userName, email string
		password        string
	}{
		{"empty name", "", "a@example.com", "password123"},
		{"empty email", "名前", "", "password123"},
		{"empty password", "名前", "a@example.com", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(tc.userName, tc.email, tc.password)
			if util.KindOf(err) != util.KindValidation {
				t.Errorf("kind = %v, want validation", util.KindOf(err))
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	if _, err := svc.Register("先客", "dup@example.com", "password123"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := svc.Register("後客", "dup@example.com", "password456")
	if util.KindOf(err) != util.KindConflict {
		t.Errorf("kind = %v, want conflict", util.KindOf(err))
	}
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user, err := svc.Register("生徒", "s@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	before := user.LastLogin

	token, err := svc.Login("s@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	claims, err := util.ParseJWT(token, "test-secret-key-0123456789abcdef")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != "s@example.com" {
		t.Errorf("claims = %+v", claims)
	}

	var reloaded model.User
	if err := db.First(&reloaded, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if !reloaded.LastLogin.After(before) {
		t.Error("last_login not updated")
	}
}

func TestLoginFailures(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user, err := svc.Register("生徒", "s@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Login("s@example.com", "wrongpassword"); util.KindOf(err) != util.KindValidation {
		t.Errorf("wrong password: kind = %v, want validation", util.KindOf(err))
	}
	if _, err := svc.Login("nobody@example.com", "password123"); util.KindOf(err) != util.KindValidation {
		t.Errorf("unknown email: kind = %v, want validation", util.KindOf(err))
	}

	// 無効化されたアカウント
	if err := db.Model(&model.User{}).Where("id = ?", user.ID).Update("disabled", true).Error; err != nil {
		t.Fatalf("disable user: %v", err)
	}
	if _, err := svc.Login("s@example.com", "password123"); util.KindOf(err) != util.KindForbidden {
		t.Errorf("disabled account: kind = %v, want forbidden", util.KindOf(err))
	}
}
