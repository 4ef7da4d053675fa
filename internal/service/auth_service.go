package service

import (
	"errors"
	"time"

	"github.com/Koto-ptts/japanese-cbt-app/internal/config"
	"github.com/Koto-ptts/japanese-cbt-app/internal/model"
	"github.com/Koto-ptts/japanese-cbt-app/internal/repository"
	"github.com/Koto-ptts/japanese-cbt-app/internal/util"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	userRepo    *repository.UserRepository
	profileRepo *repository.ProfileRepository
	cfg         *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, profileRepo *repository.ProfileRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		cfg:         cfg,
	}
}

// Register 自己登録は常に生徒アカウントになる。教員アカウントは運用側で付与する。
func (s *AuthService) Register(name, email, password string) (*model.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, util.ValidationErr("name, email and password are required")
	}

	_, err := s.userRepo.FindByEmail(email)
	if err == nil {
		return nil, util.ConflictErr("このメールアドレスは既に登録されています")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.WrapDB(err, "user not found")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, util.InternalErr(err)
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, util.WrapDB(err, "user not found")
	}

	if err := s.profileRepo.Create(&model.UserProfile{UserID: user.ID, IsTeacher: false}); err != nil {
		return nil, util.WrapDB(err, "user not found")
	}

	return user, nil
}

func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return "", util.ValidationErr("invalid credentials")
	}
	if user.Disabled {
		return "", util.ForbiddenErr("account disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", util.ValidationErr("invalid credentials")
	}

	user.LastLogin = time.Now()
	if err := s.userRepo.Update(user); err != nil {
		return "", util.WrapDB(err, "user not found")
	}

	return util.GenerateJWT(user, s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime)
}
