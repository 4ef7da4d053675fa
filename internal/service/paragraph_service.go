package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Koto-ptts/japanese-cbt-app/internal/model"
	"github.com/Koto-ptts/japanese-cbt-app/internal/repository"
	"github.com/Koto-ptts/japanese-cbt-app/internal/util"
)

type ParagraphService struct {
	paragraphRepo *repository.ParagraphRepository
	readingRepo   *repository.ActiveReadingRepository
	textRepo      *repository.TextRepository
}

func NewParagraphService(paragraphRepo *repository.ParagraphRepository, readingRepo *repository.ActiveReadingRepository, textRepo *repository.TextRepository) *ParagraphService {
	return &ParagraphService{
		paragraphRepo: paragraphRepo,
		readingRepo:   readingRepo,
		textRepo:      textRepo,
	}
}

// ParagraphInput save-all-paragraphs のリクエスト要素。
type ParagraphInput struct {
	Number      int    `json:"number"`
	Content     string `json:"content"`
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
}

// MemoView get-all-memos の正規化形。段落定義と分析コンテンツを同じ形に揃える。
type MemoView struct {
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
}

// SaveOne 単発保存。同じ (student, text, paragraph_number) への二重保存は
// ストレージの一意制約に当たり conflict で失敗する（upsert にはしない）。
func (s *ParagraphService) SaveOne(studentID, textID uint, number int, content string, startOffset, endOffset int) (*model.UserParagraphDefinition, error) {
	if number < 1 {
		return nil, util.ValidationErr("paragraph_number must be positive")
	}
	if startOffset < 0 || endOffset < startOffset {
		return nil, util.ValidationErr("paragraph offsets out of range")
	}

	if _, err := s.textRepo.FindActiveByID(textID); err != nil {
		return nil, util.WrapDB(err, "text not found")
	}

	paragraph := &model.UserParagraphDefinition{
		StudentID:       studentID,
		TextID:          textID,
		ParagraphNumber: number,
		Content:         content,
		StartOffset:     startOffset,
		EndOffset:       endOffset,
	}
	if err := s.paragraphRepo.Create(paragraph); err != nil {
		return nil, util.WrapDB(err, "text not found")
	}
	return paragraph, nil
}

func (s *ParagraphService) ListForText(studentID, textID uint) ([]model.UserParagraphDefinition, error) {
	if _, err := s.textRepo.FindActiveByID(textID); err != nil {
		return nil, util.WrapDB(err, "text not found")
	}

	paragraphs, err := s.paragraphRepo.ListByStudentAndText(studentID, textID)
	if err != nil {
		return nil, util.WrapDB(err, "paragraphs not found")
	}
	return paragraphs, nil
}

func (s *ParagraphService) DeleteOne(studentID, textID uint, paragraphNumber int) error {
	if _, err := s.textRepo.FindActiveByID(textID); err != nil {
		return util.WrapDB(err, "text not found")
	}

	paragraph, err := s.paragraphRepo.FindOwned(studentID, textID, paragraphNumber)
	if err != nil {
		return util.WrapDB(err, "paragraph not found")
	}
	return util.WrapDB(s.paragraphRepo.Delete(paragraph), "paragraph not found")
}

// ReplaceAll 全置換。リクエストのリストが新しい全量になる。
// 削除と挿入は1トランザクションで、途中失敗は全体を巻き戻す。
func (s *ParagraphService) ReplaceAll(studentID, textID uint, inputs []ParagraphInput) error {
	if _, err := s.textRepo.FindActiveByID(textID); err != nil {
		return util.WrapDB(err, "text not found")
	}

	seen := make(map[int]bool, len(inputs))
	paragraphs := make([]model.UserParagraphDefinition, 0, len(inputs))
	for _, in := range inputs {
		if in.Number < 1 {
			return util.ValidationErr("paragraph number must be positive")
		}
		if seen[in.Number] {
			return util.ValidationErr(fmt.Sprintf("duplicate paragraph number %d", in.Number))
		}
		seen[in.Number] = true
		paragraphs = append(paragraphs, model.UserParagraphDefinition{
			StudentID:       studentID,
			TextID:          textID,
			ParagraphNumber: in.Number,
			Content:         in.Content,
			StartOffset:     in.StartOffset,
			EndOffset:       in.EndOffset,
		})
	}

	return util.WrapDB(s.paragraphRepo.ReplaceAll(studentID, textID, paragraphs), "text not found")
}

// AllMemos 段落定義と積極的読み分析を1つのリストに正規化して返す。
// 永続化された結合ではなく、リクエストごとに計算する。
func (s *ParagraphService) AllMemos(studentID, textID uint) ([]MemoView, error) {
	if _, err := s.textRepo.FindActiveByID(textID); err != nil {
		return nil, util.WrapDB(err, "text not found")
	}

	paragraphs, err := s.paragraphRepo.ListByStudentAndText(studentID, textID)
	if err != nil {
		return nil, util.WrapDB(err, "paragraphs not found")
	}
	contents, err := s.readingRepo.ListByStudentAndText(studentID, textID)
	if err != nil {
		return nil, util.WrapDB(err, "content not found")
	}

	memos := make([]MemoView, 0, len(paragraphs)+len(contents))
	for _, p := range paragraphs {
		memos = append(memos, MemoView{
			Type:      "paragraph",
			Title:     fmt.Sprintf("段落%d", p.ParagraphNumber),
			Content:   p.Content,
			Data:      json.RawMessage("{}"),
			CreatedAt: p.CreatedAt,
		})
	}
	for _, c := range contents {
		data := c.Data
		if len(data) == 0 {
			data = json.RawMessage("{}")
		}
		memos = append(memos, MemoView{
			Type:      string(c.ContentType),
			Title:     c.Title,
			Content:   "",
			Data:      data,
			CreatedAt: c.CreatedAt,
		})
	}
	return memos, nil
}
