package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

type AnswerRecord struct {
	QuestionID int
	Label      string
	Points     int
}

type QuizSession struct {
	ID              string
	UserID          int64
	CurrentQuestion int
	Score           int
	Answers         []AnswerRecord
	StartedAt       time.Time
	UpdatedAt       time.Time
	Finished        bool
}

func newQuizSession(userID int64, now time.Time) *QuizSession {
	return &QuizSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		StartedAt: now,
		UpdatedAt: now,
	}
}

// RecordAnswer записывает ответ: баллы, индекс и журнал ответов меняются вместе или не меняются вовсе.
func (s *QuizSession) RecordAnswer(questionID int, label string, points int, now time.Time) error {
	if err := s.checkInvariant(); err != nil {
		return err
	}
	if s.Finished {
		return fmt.Errorf("%w: session %s is already finished", ErrInvariantViolation, s.ID)
	}
	if questionID != s.CurrentQuestion {
		return fmt.Errorf("%w: answer for question %d while session %s awaits %d",
			ErrInvariantViolation, questionID, s.ID, s.CurrentQuestion)
	}
	if points < 0 {
		return fmt.Errorf("%w: negative points %d", ErrInvariantViolation, points)
	}

	s.Answers = append(s.Answers, AnswerRecord{QuestionID: questionID, Label: label, Points: points})
	s.Score += points
	s.CurrentQuestion++
	s.UpdatedAt = now
	return nil
}

func (s *QuizSession) checkInvariant() error {
	if s.CurrentQuestion != len(s.Answers) {
		return fmt.Errorf("%w: session %s index %d but %d answers logged",
			ErrInvariantViolation, s.ID, s.CurrentQuestion, len(s.Answers))
	}
	return nil
}

func (s *QuizSession) clone() QuizSession {
	out := *s
	out.Answers = append([]AnswerRecord(nil), s.Answers...)
	return out
}

// SessionStore хранит сессии в памяти. У каждого пользователя своя блокировка,
// общая только карта слотов.
type SessionStore struct {
	mu    sync.Mutex
	slots map[int64]*sessionSlot
	now   func() time.Time
}

type sessionSlot struct {
	mu      sync.Mutex
	refs    int
	session *QuizSession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		slots: make(map[int64]*sessionSlot),
		now:   time.Now,
	}
}

// withSlot выполняет fn, удерживая блокировку пользователя
func (s *SessionStore) withSlot(userID int64, fn func(slot *sessionSlot)) {
	s.mu.Lock()
	slot, ok := s.slots[userID]
	if !ok {
		slot = &sessionSlot{}
		s.slots[userID] = slot
	}
	slot.refs++
	s.mu.Unlock()

	slot.mu.Lock()
	defer func() {
		slot.mu.Unlock()

		s.mu.Lock()
		slot.refs--
		if slot.refs == 0 && slot.session == nil {
			delete(s.slots, userID)
		}
		s.mu.Unlock()
	}()

	fn(slot)
}

// Start создает новую сессию или заменяет текущую
func (s *SessionStore) Start(userID int64) QuizSession {
	var out QuizSession
	s.withSlot(userID, func(slot *sessionSlot) {
		slot.session = newQuizSession(userID, s.now())
		out = slot.session.clone()
	})
	return out
}

func (s *SessionStore) CurrentIndex(userID int64) (int, bool) {
	session, ok := s.Get(userID)
	if !ok {
		return 0, false
	}
	return session.CurrentQuestion, true
}

func (s *SessionStore) RecordAnswer(userID int64, questionID int, label string, points int) (QuizSession, error) {
	var (
		out QuizSession
		err error
	)
	s.withSlot(userID, func(slot *sessionSlot) {
		if slot.session == nil {
			err = ErrNoActiveSession
			return
		}
		if err = slot.session.RecordAnswer(questionID, label, points, s.now()); err != nil {
			return
		}
		out = slot.session.clone()
	})
	return out, err
}

func (s *SessionStore) Get(userID int64) (QuizSession, bool) {
	var (
		out QuizSession
		ok  bool
	)
	s.withSlot(userID, func(slot *sessionSlot) {
		if slot.session != nil {
			out, ok = slot.session.clone(), true
		}
	})
	return out, ok
}

func (s *SessionStore) userIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0, len(s.slots))
	for id := range s.slots {
		ids = append(ids, id)
	}
	return ids
}
