package service

import (
	"errors"
	"fmt"
	"log"
	"time"
)

type FlowState int

const (
	StateNotStarted FlowState = iota
	StateAwaitingAnswer
	StateFinished
)

func (s FlowState) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateAwaitingAnswer:
		return "awaiting_answer"
	case StateFinished:
		return "finished"
	default:
		return fmt.Sprintf("FlowState(%d)", int(s))
	}
}

type EventKind int

const (
	// EventQuestion - следующий вопрос для показа
	EventQuestion EventKind = iota + 1
	// EventReprompt - ответ не подошел, тот же вопрос еще раз
	EventReprompt
	// EventResult - тест завершен
	EventResult
)

type QuizEvent struct {
	Kind      EventKind
	SessionID string
	Question  QuizQuestion
	Index     int
	Total     int
	Score     int
	Outcome   Outcome
	Answers   []AnswerRecord
}

// QuizObserver получает уведомления о ходе тестов. Вызывается вне блокировок сессий.
type QuizObserver interface {
	QuizStarted()
	AnswerAccepted()
	AnswerRejected()
	QuizFinished(outcome Outcome)
	QuizCancelled()
	QuizAborted()
}

type nopObserver struct{}

func (nopObserver) QuizStarted()         {}
func (nopObserver) AnswerAccepted()      {}
func (nopObserver) AnswerRejected()      {}
func (nopObserver) QuizFinished(Outcome) {}
func (nopObserver) QuizCancelled()       {}
func (nopObserver) QuizAborted()         {}

// QuizEngine ведет пользователя по вопросам банка и подсчитывает итог.
type QuizEngine struct {
	bank       *QuestionBank
	classifier *OutcomeClassifier
	sessions   *SessionStore
	observer   QuizObserver
}

type EngineOption func(*QuizEngine)

func WithObserver(observer QuizObserver) EngineOption {
	return func(e *QuizEngine) {
		if observer != nil {
			e.observer = observer
		}
	}
}

func WithSessionStore(sessions *SessionStore) EngineOption {
	return func(e *QuizEngine) {
		if sessions != nil {
			e.sessions = sessions
		}
	}
}

func NewQuizEngine(bank *QuestionBank, classifier *OutcomeClassifier, opts ...EngineOption) (*QuizEngine, error) {
	if bank == nil || classifier == nil {
		return nil, errors.New("quiz engine needs a question bank and an outcome classifier")
	}
	if err := classifier.Covers(bank.ScoreRange()); err != nil {
		return nil, fmt.Errorf("outcome bands do not fit the question bank: %w", err)
	}

	e := &QuizEngine{
		bank:       bank,
		classifier: classifier,
		sessions:   NewSessionStore(),
		observer:   nopObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *QuizEngine) Bank() *QuestionBank {
	return e.bank
}

// Start начинает тест заново, даже если предыдущий еще не закончен.
func (e *QuizEngine) Start(userID int64) QuizEvent {
	session := e.sessions.Start(userID)
	first, _ := e.bank.Question(0)
	e.observer.QuizStarted()
	return e.questionEvent(EventQuestion, &session, first)
}

// SubmitAnswer обрабатывает ответ пользователя на текущий вопрос.
func (e *QuizEngine) SubmitAnswer(userID int64, raw string) (QuizEvent, error) {
	var (
		event QuizEvent
		err   error
	)
	e.sessions.withSlot(userID, func(slot *sessionSlot) {
		if slot.session == nil || slot.session.Finished {
			err = ErrNoActiveSession
			return
		}
		event, err = e.advance(slot.session, raw)
		if errors.Is(err, ErrInvariantViolation) {
			log.Printf("Error in quiz session %s of user %d, aborting: %v", slot.session.ID, userID, err)
			slot.session = nil
		}
	})

	switch {
	case errors.Is(err, ErrInvariantViolation):
		e.observer.QuizAborted()
		return QuizEvent{}, fmt.Errorf("%w: %w", ErrSessionAborted, err)
	case err != nil:
		return QuizEvent{}, err
	}

	switch event.Kind {
	case EventReprompt:
		e.observer.AnswerRejected()
	case EventQuestion:
		e.observer.AnswerAccepted()
	case EventResult:
		e.observer.AnswerAccepted()
		e.observer.QuizFinished(event.Outcome)
	}
	return event, nil
}

// advance вызывается под блокировкой пользователя
func (e *QuizEngine) advance(session *QuizSession, raw string) (QuizEvent, error) {
	if err := session.checkInvariant(); err != nil {
		return QuizEvent{}, err
	}
	question, ok := e.bank.Question(session.CurrentQuestion)
	if !ok {
		return QuizEvent{}, fmt.Errorf("%w: session %s awaits question %d of %d",
			ErrInvariantViolation, session.ID, session.CurrentQuestion, e.bank.Count())
	}

	choice, ok := question.MatchOption(raw)
	if !ok {
		return e.questionEvent(EventReprompt, session, question), nil
	}
	points, err := question.PointsFor(choice)
	if err != nil {
		return QuizEvent{}, err
	}
	if err := session.RecordAnswer(question.ID, question.Options[choice], points, e.sessions.now()); err != nil {
		return QuizEvent{}, err
	}

	if next, ok := e.bank.Question(session.CurrentQuestion); ok {
		return e.questionEvent(EventQuestion, session, next), nil
	}

	session.Finished = true
	return QuizEvent{
		Kind:      EventResult,
		SessionID: session.ID,
		Index:     session.CurrentQuestion,
		Total:     e.bank.Count(),
		Score:     session.Score,
		Outcome:   e.classifier.Classify(session.Score),
		Answers:   append([]AnswerRecord(nil), session.Answers...),
	}, nil
}

func (e *QuizEngine) questionEvent(kind EventKind, session *QuizSession, q QuizQuestion) QuizEvent {
	return QuizEvent{
		Kind:      kind,
		SessionID: session.ID,
		Question:  q,
		Index:     q.ID,
		Total:     e.bank.Count(),
		Score:     session.Score,
	}
}

// Cancel сбрасывает сессию пользователя. Возвращает true, если тест был в процессе.
func (e *QuizEngine) Cancel(userID int64) bool {
	var active bool
	e.sessions.withSlot(userID, func(slot *sessionSlot) {
		active = slot.session != nil && !slot.session.Finished
		slot.session = nil
	})
	if active {
		e.observer.QuizCancelled()
	}
	return active
}

// State возвращает состояние теста пользователя и индекс текущего вопроса.
func (e *QuizEngine) State(userID int64) (FlowState, int) {
	session, ok := e.sessions.Get(userID)
	switch {
	case !ok:
		return StateNotStarted, 0
	case session.Finished:
		return StateFinished, session.CurrentQuestion
	default:
		return StateAwaitingAnswer, session.CurrentQuestion
	}
}

func (e *QuizEngine) Session(userID int64) (QuizSession, bool) {
	return e.sessions.Get(userID)
}

// ActiveSessions считает незавершенные тесты
func (e *QuizEngine) ActiveSessions() int {
	n := 0
	for _, id := range e.sessions.userIDs() {
		if state, _ := e.State(id); state == StateAwaitingAnswer {
			n++
		}
	}
	return n
}

// ExpireIdle удаляет сессии, которые не менялись дольше maxIdle.
func (e *QuizEngine) ExpireIdle(maxIdle time.Duration) int {
	expired := 0
	now := e.sessions.now()
	for _, id := range e.sessions.userIDs() {
		e.sessions.withSlot(id, func(slot *sessionSlot) {
			if slot.session != nil && now.Sub(slot.session.UpdatedAt) > maxIdle {
				slot.session = nil
				expired++
			}
		})
	}
	return expired
}
