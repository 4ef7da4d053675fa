package service

import (
	"testing"

	"github.com/Koto-ptts/japanese-cbt-app/internal/model"
	"github.com/Koto-ptts/japanese-cbt-app/internal/repository"
	"github.com/Koto-ptts/japanese-cbt-app/pkg/database"
	"github.com/Koto-ptts/japanese-cbt-app/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

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

func seedUser(t *testing.T, db *gorm.DB, name, email string) *model.User {
	t.Helper()
	user := &model.User{Name: name, Email: email, Password: "hashed"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedStudent(t *testing.T, db *gorm.DB, name, email string) *model.User {
	t.Helper()
	user := seedUser(t, db, name, email)
	if err := db.Create(&model.UserProfile{UserID: user.ID, IsTeacher: false}).Error; err != nil {
		t.Fatalf("seed student profile: %v", err)
	}
	return user
}

func seedTeacher(t *testing.T, db *gorm.DB, name, email string) *model.User {
	t.Helper()
	user := seedUser(t, db, name, email)
	if err := db.Create(&model.UserProfile{UserID: user.ID, IsTeacher: true}).Error; err != nil {
		t.Fatalf("seed teacher profile: %v", err)
	}
	return user
}

func seedText(t *testing.T, db *gorm.DB, creatorID uint, content string, active bool) *model.Text {
	t.Helper()
	text := &model.Text{
		Title:       "走れメロス",
		Content:     content,
		Author:      "太宰治",
		CreatedByID: creatorID,
		IsActive:    active,
	}
	if err := db.Create(text).Error; err != nil {
		t.Fatalf("seed text: %v", err)
	}
	return text
}

func seedQuestion(t *testing.T, db *gorm.DB, textID uint, order int) *model.Question {
	t.Helper()
	question := &model.Question{
		TextID:       textID,
		QuestionText: "主人公の心情を説明しなさい",
		QuestionType: model.QuestionEssay,
		Order:        order,
	}
	if err := db.Create(question).Error; err != nil {
		t.Fatalf("seed question: %v", err)
	}
	return question
}

func seedChoiceQuestion(t *testing.T, db *gorm.DB, textID uint) (*model.Question, []model.QuestionChoice) {
	t.Helper()
	question := &model.Question{
		TextID:       textID,
		QuestionText: "本文の内容と一致するものを選びなさい",
		QuestionType: model.QuestionChoiceType,
		Order:        1,
	}
	if err := db.Create(question).Error; err != nil {
		t.Fatalf("seed choice question: %v", err)
	}
	choices := []model.QuestionChoice{
		{QuestionID: question.ID, ChoiceText: "ア", Order: 1, IsCorrect: true},
		{QuestionID: question.ID, ChoiceText: "イ", Order: 2},
	}
	if err := db.Create(&choices).Error; err != nil {
		t.Fatalf("seed choices: %v", err)
	}
	return question, choices
}

func newSessionService(db *gorm.DB) *SessionService {
	return NewSessionService(repository.NewSessionRepository(db), repository.NewTextRepository(db))
}

func newContentService(db *gorm.DB) *ContentService {
	return NewContentService(
		repository.NewTextRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewAnnotationRepository(db),
		repository.NewResponseRepository(db),
		repository.NewSessionRepository(db),
		newSessionService(db),
	)
}
