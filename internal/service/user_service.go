package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Koto-ptts/japanese-cbt-app/internal/model"
	"github.com/Koto-ptts/japanese-cbt-app/internal/repository"
	"github.com/Koto-ptts/japanese-cbt-app/internal/util"
	"github.com/Koto-ptts/japanese-cbt-app/pkg/logger"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const activeTextsCacheKey = "cbt:texts:active"
const activeTextsCacheTTL = 5 * time.Minute

// UserService ダッシュボードと生徒アカウント管理。
type UserService struct {
	userRepo    *repository.UserRepository
	profileRepo *repository.ProfileRepository
	textRepo    *repository.TextRepository
	rdb         *redis.Client
}

func NewUserService(userRepo *repository.UserRepository, profileRepo *repository.ProfileRepository, textRepo *repository.TextRepository, rdb *redis.Client) *UserService {
	return &UserService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		textRepo:    textRepo,
		rdb:         rdb,
	}
}

// Dashboard ダッシュボードビュー。
type Dashboard struct {
	IsTeacher    bool         `json:"isTeacher"`
	Texts        []model.Text `json:"texts"`
	StudentCount int64        `json:"studentCount,omitempty"`
}

// GetDashboard プロファイルが無ければ生徒として作成してから返す。
// 教員: 自分が作成した有効な文章＋生徒数。生徒: 全ての有効な文章。
func (s *UserService) GetDashboard(ctx context.Context, userID uint) (*Dashboard, error) {
	profile, err := s.profileRepo.GetOrCreate(userID)
	if err != nil {
		return nil, util.WrapDB(err, "profile not found")
	}

	dashboard := &Dashboard{IsTeacher: profile.IsTeacher}

	if profile.IsTeacher {
		texts, err := s.textRepo.ListActiveByCreator(userID)
		if err != nil {
			return nil, util.WrapDB(err, "texts not found")
		}
		count, err := s.userRepo.CountStudents()
		if err != nil {
			return nil, util.WrapDB(err, "students not found")
		}
		dashboard.Texts = texts
		dashboard.StudentCount = count
		return dashboard, nil
	}

	texts, err := s.listActiveTextsCached(ctx)
	if err != nil {
		return nil, err
	}
	dashboard.Texts = texts
	return dashboard, nil
}

// listActiveTextsCached 有効文章リストはRedisに短時間キャッシュする。
// キャッシュ障害は無視してDBへフォールバックする。
func (s *UserService) listActiveTextsCached(ctx context.Context) ([]model.Text, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, activeTextsCacheKey).Bytes(); err == nil {
			var texts []model.Text
			if err := json.Unmarshal(cached, &texts); err == nil {
				return texts, nil
			}
		}
	}

	texts, err := s.textRepo.ListActive()
	if err != nil {
		return nil, util.WrapDB(err, "texts not found")
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(texts); err == nil {
			if err := s.rdb.Set(ctx, activeTextsCacheKey, payload, activeTextsCacheTTL).Err(); err != nil {
				logger.Log.Warn("text list cache write failed", zap.Error(err))
			}
		}
	}
	return texts, nil
}

func (s *UserService) ListStudents() ([]model.User, error) {
	students, err := s.userRepo.ListStudents()
	if err != nil {
		return nil, util.WrapDB(err, "students not found")
	}
	return students, nil
}

// CreateStudent 教員による生徒アカウント作成。メール重複は conflict。
func (s *UserService) CreateStudent(name, email, password string) (*model.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, util.ValidationErr("name, email and password are required")
	}

	_, err := s.userRepo.FindByEmail(email)
	if err == nil {
		return nil, util.ConflictErr("このメールアドレスは既に使用されています")
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

// UpdateStudent 名前の変更とパスワード再設定。パスワードは入力された場合のみ更新する。
func (s *UserService) UpdateStudent(studentID uint, name, newPassword string) (*model.User, error) {
	student, err := s.userRepo.FindStudentByID(studentID)
	if err != nil {
		return nil, util.WrapDB(err, "student not found")
	}

	if name != "" {
		student.Name = name
	}
	if newPassword != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, util.InternalErr(err)
		}
		student.Password = string(hashedPassword)
	}

	if err := s.userRepo.Update(student); err != nil {
		return nil, util.WrapDB(err, "student not found")
	}
	return student, nil
}
