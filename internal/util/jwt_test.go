package util

import (
	"testing"
	"time"

	"github.com/Koto-ptts/japanese-cbt-app/internal/model"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{Name: "生徒", Email: "s@example.com"}
	user.ID = 42

	token, err := GenerateJWT(user, "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(token, "secret")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "s@example.com" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	user := &model.User{Email: "s@example.com"}
	user.ID = 1

	token, err := GenerateJWT(user, "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ParseJWT(token, "other-secret"); err == nil {
		t.Error("token signed with another secret must be rejected")
	}
}

func TestJWTRejectsExpired(t *testing.T) {
	user := &model.User{Email: "s@example.com"}
	user.ID = 1

	token, err := GenerateJWT(user, "secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ParseJWT(token, "secret"); err == nil {
		t.Error("expired token must be rejected")
	}
}
