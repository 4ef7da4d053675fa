package service

import (
	"context"
	"testing"

	"github.com/Koto-ptts/japanese-cbt-app/internal/model"
	"github.com/Koto-ptts/japanese-cbt-app/internal/repository"
	"github.com/Koto-ptts/japanese-cbt-app/internal/util"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newUserService(db *gorm.DB) *UserService {
	return NewUserService(
		repository.NewUserRepository(db),
		repository.NewProfileRepository(db),
		repository.NewTextRepository(db),
		nil,
	)
}

func TestDashboardProvisionsStudentProfile(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	// プロファイルなしのユーザー
	user := seedUser(t, db, "新規ユーザー", "new@example.com")
	seedText(t, db, 99, "本文", true)
	seedText(t, db, 99, "非公開", false)

	dashboard, err := svc.GetDashboard(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	if dashboard.IsTeacher {
		t.Error("lazily provisioned profile must be a student")
	}
	if len(dashboard.Texts) != 1 {
		t.Errorf("texts = %d, want 1 (active only)", len(dashboard.Texts))
	}

	var profile model.UserProfile
	if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		t.Fatalf("profile not created: %v", err)
	}
	if profile.IsTeacher {
		t.Error("provisioned profile has teacher flag")
	}

	// 2回目のアクセスで重複作成しない
	if _, err := svc.GetDashboard(context.Background(), user.ID); err != nil {
		t.Fatalf("second GetDashboard: %v", err)
	}
	var count int64
	db.Model(&model.UserProfile{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Errorf("profiles = %d, want 1", count)
	}
}

func TestDashboardTeacherView(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	teacher := seedTeacher(t, db, "教員", "t@example.com")
	otherTeacher := seedTeacher(t, db, "別の教員", "t2@example.com")
	seedStudent(t, db, "生徒A", "a@example.com")
	seedStudent(t, db, "生徒B", "b@example.com")

	seedText(t, db, teacher.ID, "自分の文章", true)
	seedText(t, db, otherTeacher.ID, "他人の文章", true)

	dashboard, err := svc.GetDashboard(context.Background(), teacher.ID)
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	if !dashboard.IsTeacher {
		t.Error("teacher flag lost")
	}
	if len(dashboard.Texts) != 1 {
		t.Errorf("texts = %d, want 1 (own texts only)", len(dashboard.Texts))
	}
	// 教員はカウントに含めない
	if dashboard.StudentCount != 2 {
		t.Errorf("student count = %d, want 2", dashboard.StudentCount)
	}
}

func TestListStudentsExcludesTeachers(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	seedTeacher(t, db, "教員", "t@example.com")
	seedStudent(t, db, "やまだ", "yamada@example.com")
	seedStudent(t, db, "あおき", "aoki@example.com")

	students, err := svc.ListStudents()
	if err != nil {
		t.Fatalf("ListStudents: %v", err)
	}
	if len(students) != 2 {
		t.Fatalf("students = %d, want 2", len(students))
	}
	if students[0].Name != "あおき" {
		t.Errorf("students not sorted by name: first = %q", students[0].Name)
	}
}

func TestCreateStudentDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	seedStudent(t, db, "既存", "dup@example.com")

	_, err := svc.CreateStudent("新規", "dup@example.com", "password123")
	if util.KindOf(err) != util.KindConflict {
		t.Errorf("kind = %v, want conflict", util.KindOf(err))
	}
}

func TestCreateStudentHashesPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	student, err := svc.CreateStudent("生徒", "s@example.com", "password123")
	if err != nil {
		t.Fatalf("CreateStudent: %v", err)
	}
	if student.Password == "password123" {
		t.Error("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(student.Password), []byte("password123")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}

	var profile model.UserProfile
	if err := db.Where("user_id = ?", student.ID).First(&profile).Error; err != nil {
		t.Fatalf("profile not created: %v", err)
	}
	if profile.IsTeacher {
		t.Error("created student must not be a teacher")
	}
}

func TestUpdateStudentPasswordOnlyWhenProvided(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	student, err := svc.CreateStudent("生徒", "s@example.com", "password123")
	if err != nil {
		t.Fatalf("CreateStudent: %v", err)
	}
	originalHash := student.Password

	// 名前のみ変更
	updated, err := svc.UpdateStudent(student.ID, "改名後", "")
	if err != nil {
		t.Fatalf("UpdateStudent: %v", err)
	}
	if updated.Name != "改名後" {
		t.Errorf("name = %q", updated.Name)
	}
	if updated.Password != originalHash {
		t.Error("password changed without new_password")
	}

	// パスワード再設定
	updated, err = svc.UpdateStudent(student.ID, "", "newpassword456")
	if err != nil {
		t.Fatalf("UpdateStudent password: %v", err)
	}
	if updated.Name != "改名後" {
		t.Error("empty name must not clear the existing name")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("newpassword456")); err != nil {
		t.Errorf("new password does not verify: %v", err)
	}
}

func TestUpdateStudentRejectsTeacherTarget(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	teacher := seedTeacher(t, db, "教員", "t@example.com")

	_, err := svc.UpdateStudent(teacher.ID, "改竄", "")
	if util.KindOf(err) != util.KindNotFound {
		t.Errorf("kind = %v, want not_found", util.KindOf(err))
	}
}
