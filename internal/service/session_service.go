package service

import (
	"time"

	"github.com/Koto-ptts/japanese-cbt-app/internal/model"
	"github.com/Koto-ptts/japanese-cbt-app/internal/repository"
	"github.com/Koto-ptts/japanese-cbt-app/internal/util"
	"github.com/Koto-ptts/japanese-cbt-app/pkg/monitoring"
)

// SessionService 読解→解答→(完了) のフェーズ遷移を司る。
// セッション作成は GetOrCreate のみ。遷移系は既存セッションを要求し、
// 無ければ not_found で失敗する（自動作成しない）。
type SessionService struct {
	sessionRepo *repository.SessionRepository
	textRepo    *repository.TextRepository
}

func NewSessionService(sessionRepo *repository.SessionRepository, textRepo *repository.TextRepository) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		textRepo:    textRepo,
	}
}

// GetOrCreate 初回アクセスで reading フェーズのセッションを作成して返す。
func (s *SessionService) GetOrCreate(studentID, textID uint) (*model.ReadingSession, error) {
	if _, err := s.textRepo.FindActiveByID(textID); err != nil {
		return nil, util.WrapDB(err, "text not found")
	}

	session, err := s.sessionRepo.GetOrCreate(studentID, textID)
	if err != nil {
		return nil, util.WrapDB(err, "reading session not found")
	}
	return session, nil
}

// TransitionToAnswering 解答フェーズへ移行する。
// 既に answering でも拒否せず、境界の時刻を打ち直す。
func (s *SessionService) TransitionToAnswering(studentID, textID uint) (*model.ReadingSession, error) {
	if _, err := s.textRepo.FindActiveByID(textID); err != nil {
		return nil, util.WrapDB(err, "text not found")
	}

	session, err := s.sessionRepo.FindByStudentAndText(studentID, textID)
	if err != nil {
		return nil, util.WrapDB(err, "reading session not found")
	}

	now := time.Now()
	session.CurrentPhase = model.PhaseAnswering
	session.ReadingEndTime = &now
	session.AnsweringStartTime = &now

	if err := s.sessionRepo.Save(session); err != nil {
		return nil, util.WrapDB(err, "reading session not found")
	}

	monitoring.PhaseTransitionCounter.WithLabelValues(string(model.PhaseAnswering)).Inc()
	return session, nil
}

// TransitionToReading 読解フェーズへ戻す。answering_end_time のみ打ち直し、
// 以前の開始・終了時刻は保持する（読解⇔解答の多周回を許容）。
func (s *SessionService) TransitionToReading(studentID, textID uint) (*model.ReadingSession, error) {
	if _, err := s.textRepo.FindActiveByID(textID); err != nil {
		return nil, util.WrapDB(err, "text not found")
	}

	session, err := s.sessionRepo.FindByStudentAndText(studentID, textID)
	if err != nil {
		return nil, util.WrapDB(err, "reading session not found")
	}

	now := time.Now()
	session.CurrentPhase = model.PhaseReading
	session.AnsweringEndTime = &now

	if err := s.sessionRepo.Save(session); err != nil {
		return nil, util.WrapDB(err, "reading session not found")
	}

	monitoring.PhaseTransitionCounter.WithLabelValues(string(model.PhaseReading)).Inc()
	return session, nil
}
