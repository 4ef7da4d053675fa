package service

import (
	"encoding/json"
	"testing"

	"github.com/Koto-ptts/japanese-cbt-app/internal/model"
	"github.com/Koto-ptts/japanese-cbt-app/internal/repository"
	"github.com/Koto-ptts/japanese-cbt-app/internal/util"
	"gorm.io/gorm"
)

func newParagraphService(db *gorm.DB) *ParagraphService {
	return NewParagraphService(
		repository.NewParagraphRepository(db),
		repository.NewActiveReadingRepository(db),
		repository.NewTextRepository(db),
	)
}

func TestSaveOneDuplicateNumberConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := newParagraphService(db)
	student := seedStudent(t, db, "生徒A", "a@example.com")
	text := seedText(t, db, 99, "本文", true)

	if _, err := svc.SaveOne(student.ID, text.ID, 1, "序論", 0, 10); err != nil {
		t.Fatalf("SaveOne: %v", err)
	}

	_, err := svc.SaveOne(student.ID, text.ID, 1, "上書きしようとする", 0, 10)
	if util.KindOf(err) != util.KindConflict {
		t.Errorf("kind = %v, want conflict", util.KindOf(err))
	}

	// 別の生徒なら同じ番号でも保存できる
	other := seedStudent(t, db, "生徒B", "b@example.com")
	if _, err := svc.SaveOne(other.ID, text.ID, 1, "序論", 0, 10); err != nil {
		t.Errorf("other student same number: %v", err)
	}
}

func TestSaveOneValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newParagraphService(db)
	student := seedStudent(t, db, "生徒A", "a@example.com")
	text := seedText(t, db, 99, "本文", true)

	if _, err := svc.SaveOne(student.ID, text.ID, 0, "x", 0, 1); util.KindOf(err) != util.KindValidation {
		t.Errorf("zero number: kind = %v, want validation", util.KindOf(err))
	}
	if _, err := svc.SaveOne(student.ID, text.ID, 1, "x", 5, 2); util.KindOf(err) != util.KindValidation {
		t.Errorf("reversed offsets: kind = %v, want validation", util.KindOf(err))
	}
}

func TestReplaceAllSwapsWholeSet(t *testing.T) {
	db := newTestDB(t)
	svc := newParagraphService(db)
	student := seedStudent(t, db, "生徒A", "a@example.com")
	text := seedText(t, db, 99, "本文", true)

	for n := 1; n <= 3; n++ {
		if _, err := svc.SaveOne(student.ID, text.ID, n, "旧", 0, 1); err != nil {
			t.Fatalf("SaveOne %d: %v", n, err)
		}
	}

	err := svc.ReplaceAll(student.ID, text.ID, []ParagraphInput{
		{Number: 2, Content: "新しい本論", StartOffset: 10, EndOffset: 20},
		{Number: 1, Content: "新しい序論", StartOffset: 0, EndOffset: 10},
	})
	if err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	paragraphs, err := svc.ListForText(student.ID, text.ID)
	if err != nil {
		t.Fatalf("ListForText: %v", err)
	}
	if len(paragraphs) != 2 {
		t.Fatalf("paragraphs = %d, want 2", len(paragraphs))
	}
	if paragraphs[0].ParagraphNumber != 1 || paragraphs[1].ParagraphNumber != 2 {
		t.Error("paragraphs not sorted by number")
	}
	if paragraphs[0].Content != "新しい序論" {
		t.Errorf("content = %q", paragraphs[0].Content)
	}
}

func TestReplaceAllRejectsDuplicateNumbers(t *testing.T) {
	db := newTestDB(t)
	svc := newParagraphService(db)
	student := seedStudent(t, db, "生徒A", "a@example.com")
	text := seedText(t, db, 99, "本文", true)

	if _, err := svc.SaveOne(student.ID, text.ID, 1, "既存", 0, 1); err != nil {
		t.Fatalf("SaveOne: %v", err)
	}

	err := svc.ReplaceAll(student.ID, text.ID, []ParagraphInput{
		{Number: 1, Content: "a"},
		{Number: 1, Content: "b"},
	})
	if util.KindOf(err) != util.KindValidation {
		t.Fatalf("kind = %v, want validation", util.KindOf(err))
	}

	// 失敗したリクエストは既存の定義を壊さない
	paragraphs, err := svc.ListForText(student.ID, text.ID)
	if err != nil {
		t.Fatalf("ListForText: %v", err)
	}
	if len(paragraphs) != 1 || paragraphs[0].Content != "既存" {
		t.Error("failed replace must leave existing definitions untouched")
	}
}

func TestReplaceAllWithEmptyListClears(t *testing.T) {
	db := newTestDB(t)
	svc := newParagraphService(db)
	student := seedStudent(t, db, "生徒A", "a@example.com")
	text := seedText(t, db, 99, "本文", true)

	if _, err := svc.SaveOne(student.ID, text.ID, 1, "消える", 0, 1); err != nil {
		t.Fatalf("SaveOne: %v", err)
	}
	if err := svc.ReplaceAll(student.ID, text.ID, nil); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	paragraphs, err := svc.ListForText(student.ID, text.ID)
	if err != nil {
		t.Fatalf("ListForText: %v", err)
	}
	if len(paragraphs) != 0 {
		t.Errorf("paragraphs = %d, want 0", len(paragraphs))
	}
}

func TestAllMemosMergesParagraphsAndAnalysis(t *testing.T) {
	db := newTestDB(t)
	svc := newParagraphService(db)
	readings := NewActiveReadingService(repository.NewActiveReadingRepository(db), repository.NewTextRepository(db))
	student := seedStudent(t, db, "生徒A", "a@example.com")
	text := seedText(t, db, 99, "本文", true)

	if _, err := svc.SaveOne(student.ID, text.ID, 2, "本論の要約", 10, 20); err != nil {
		t.Fatalf("SaveOne: %v", err)
	}
	if _, err := readings.Create(student.ID, text.ID, model.ReadingLogicStructure, "論理構造", json.RawMessage(`{"nodes":[]}`)); err != nil {
		t.Fatalf("readings.Create: %v", err)
	}

	memos, err := svc.AllMemos(student.ID, text.ID)
	if err != nil {
		t.Fatalf("AllMemos: %v", err)
	}
	if len(memos) != 2 {
		t.Fatalf("memos = %d, want 2", len(memos))
	}

	byType := make(map[string]MemoView, len(memos))
	for _, m := range memos {
		byType[m.Type] = m
	}
	paragraph, ok := byType["paragraph"]
	if !ok {
		t.Fatal("paragraph memo missing")
	}
	if paragraph.Title != "段落2" || paragraph.Content != "本論の要約" {
		t.Errorf("paragraph memo = %+v", paragraph)
	}
	analysis, ok := byType[string(model.ReadingLogicStructure)]
	if !ok {
		t.Fatal("analysis memo missing")
	}
	if analysis.Title != "論理構造" {
		t.Errorf("analysis title = %q", analysis.Title)
	}
}
