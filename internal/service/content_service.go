package service

import (
	"errors"

	"github.com/Koto-ptts/japanese-cbt-app/internal/model"
	"github.com/Koto-ptts/japanese-cbt-app/internal/repository"
	"github.com/Koto-ptts/japanese-cbt-app/internal/util"
	"gorm.io/gorm"
)

// ContentService 文章・問題の閲覧と回答提出。
// 問題の可視性と回答可否はセッションのフェーズから導出する。
type ContentService struct {
	textRepo       *repository.TextRepository
	questionRepo   *repository.QuestionRepository
	annotationRepo *repository.AnnotationRepository
	responseRepo   *repository.ResponseRepository
	sessionRepo    *repository.SessionRepository
	sessions       *SessionService
}

func NewContentService(
	textRepo *repository.TextRepository,
	questionRepo *repository.QuestionRepository,
	annotationRepo *repository.AnnotationRepository,
	responseRepo *repository.ResponseRepository,
	sessionRepo *repository.SessionRepository,
	sessions *SessionService,
) *ContentService {
	return &ContentService{
		textRepo:       textRepo,
		questionRepo:   questionRepo,
		annotationRepo: annotationRepo,
		responseRepo:   responseRepo,
		sessionRepo:    sessionRepo,
		sessions:       sessions,
	}
}

// TextDetail 文章詳細ビュー。
type TextDetail struct {
	Text         *model.Text               `json:"text"`
	CurrentPhase model.SessionPhase        `json:"currentPhase"`
	Session      *model.ReadingSession     `json:"session"`
	Questions    []model.Question          `json:"questions"`
	Annotations  []model.StudentAnnotation `json:"annotations"`
}

// GetTextDetail セッションを取得（無ければ作成）し、フェーズに応じて問題リストを付ける。
// 問題は answering フェーズでのみ載る。show_in_answering_phase は参照しない。
func (s *ContentService) GetTextDetail(studentID, textID uint, isTeacher bool) (*TextDetail, error) {
	text, err := s.textRepo.FindActiveByID(textID)
	if err != nil {
		return nil, util.WrapDB(err, "text not found")
	}

	session, err := s.sessions.GetOrCreate(studentID, textID)
	if err != nil {
		return nil, err
	}

	detail := &TextDetail{
		Text:         text,
		CurrentPhase: session.CurrentPhase,
		Session:      session,
		Questions:    []model.Question{},
		Annotations:  []model.StudentAnnotation{},
	}

	if session.CurrentPhase == model.PhaseAnswering {
		questions, err := s.questionRepo.ListByText(textID)
		if err != nil {
			return nil, util.WrapDB(err, "questions not found")
		}
		detail.Questions = questions
	}

	if !isTeacher {
		annotations, err := s.annotationRepo.ListByStudentAndText(studentID, textID)
		if err != nil {
			return nil, util.WrapDB(err, "annotations not found")
		}
		detail.Annotations = annotations
	}

	return detail, nil
}

// QuestionDetail 問題詳細ビュー。既存回答があれば一緒に返す。
type QuestionDetail struct {
	Question *model.Question        `json:"question"`
	Response *model.StudentResponse `json:"response"`
	Session  *model.ReadingSession  `json:"session"`
}

// GetQuestionDetail フェーズゲート付きの問題詳細。
// セッションが無い、または reading フェーズのままなら forbidden。
func (s *ContentService) GetQuestionDetail(studentID, questionID uint) (*QuestionDetail, error) {
	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		return nil, util.WrapDB(err, "question not found")
	}

	session, err := s.requireAnsweringPhase(studentID, question.TextID)
	if err != nil {
		return nil, err
	}

	detail := &QuestionDetail{Question: question, Session: session}

	response, err := s.responseRepo.FindByStudentAndQuestion(studentID, questionID)
	if err == nil {
		detail.Response = response
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.WrapDB(err, "response not found")
	}

	return detail, nil
}

// SubmitResponse 回答の保存。(student, question) に付き1行で、再提出は上書き。
// 無効な selected_choice_id は黙殺せず validation エラーで拒否する。
func (s *ContentService) SubmitResponse(studentID, questionID uint, responseText string, selectedChoiceID *uint) (*model.StudentResponse, error) {
	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		return nil, util.WrapDB(err, "question not found")
	}

	if _, err := s.requireAnsweringPhase(studentID, question.TextID); err != nil {
		return nil, err
	}

	if selectedChoiceID != nil {
		if _, err := s.questionRepo.FindChoiceForQuestion(*selectedChoiceID, questionID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ValidationErr("invalid selected_choice")
			}
			return nil, util.WrapDB(err, "choice not found")
		}
	}

	response, err := s.responseRepo.FindByStudentAndQuestion(studentID, questionID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.WrapDB(err, "response not found")
		}
		response = &model.StudentResponse{
			StudentID:  studentID,
			QuestionID: questionID,
		}
	}

	response.ResponseText = responseText
	if selectedChoiceID != nil {
		response.SelectedChoiceID = selectedChoiceID
	}
	response.IsSubmitted = true

	if response.ID == 0 {
		// 同時提出は一意制約で2本目が弾かれる
		err = s.responseRepo.Create(response)
	} else {
		err = s.responseRepo.Save(response)
	}
	if err != nil {
		return nil, util.WrapDB(err, "question not found")
	}
	return response, nil
}

func (s *ContentService) requireAnsweringPhase(studentID, textID uint) (*model.ReadingSession, error) {
	session, err := s.sessionRepo.FindByStudentAndText(studentID, textID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundErr("reading session not found")
		}
		return nil, util.WrapDB(err, "reading session not found")
	}
	if session.CurrentPhase != model.PhaseAnswering {
		return nil, util.ForbiddenErr("transition to answering phase before answering questions")
	}
	return session, nil
}
