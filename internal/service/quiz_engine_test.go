package service

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func twoQuestionBank(t *testing.T) *QuestionBank {
	t.Helper()
	bank, err := NewQuestionBank([]QuizQuestion{
		{Question: "first", Options: []string{"A", "B"}, Points: []int{1, 4}},
		{Question: "second", Options: []string{"X", "Y"}, Points: []int{2, 3}},
	})
	if err != nil {
		t.Fatalf("NewQuestionBank: %v", err)
	}
	return bank
}

func twoQuestionBands() []OutcomeBand {
	return []OutcomeBand{
		{Lower: 3, Upper: 4, Label: "low"},
		{Lower: 5, Upper: 7, Label: "high"},
	}
}

func newTestEngine(t *testing.T, opts ...EngineOption) *QuizEngine {
	t.Helper()
	classifier, err := NewOutcomeClassifier(twoQuestionBands(), DefaultOutcome())
	if err != nil {
		t.Fatalf("NewOutcomeClassifier: %v", err)
	}
	engine, err := NewQuizEngine(twoQuestionBank(t), classifier, opts...)
	if err != nil {
		t.Fatalf("NewQuizEngine: %v", err)
	}
	return engine
}

func assertInvariant(t *testing.T, engine *QuizEngine, userID int64) {
	t.Helper()
	session, ok := engine.Session(userID)
	if !ok {
		return
	}
	if session.CurrentQuestion != len(session.Answers) {
		t.Fatalf("index %d does not match %d logged answers", session.CurrentQuestion, len(session.Answers))
	}
}

func TestQuizEngineScenario(t *testing.T) {
	engine := newTestEngine(t)
	const user = int64(42)

	event := engine.Start(user)
	if event.Kind != EventQuestion || event.Question.Question != "first" || event.Index != 0 || event.Total != 2 {
		t.Fatalf("unexpected start event: %+v", event)
	}
	assertInvariant(t, engine, user)

	event, err := engine.SubmitAnswer(user, "B")
	if err != nil {
		t.Fatalf("SubmitAnswer(B): %v", err)
	}
	if event.Kind != EventQuestion || event.Question.Question != "second" {
		t.Fatalf("expected second question, got %+v", event)
	}
	session, _ := engine.Session(user)
	if session.Score != 4 || session.CurrentQuestion != 1 {
		t.Fatalf("expected score 4 index 1, got score %d index %d", session.Score, session.CurrentQuestion)
	}
	assertInvariant(t, engine, user)

	event, err = engine.SubmitAnswer(user, "X")
	if err != nil {
		t.Fatalf("SubmitAnswer(X): %v", err)
	}
	if event.Kind != EventResult {
		t.Fatalf("expected result event, got %+v", event)
	}
	if event.Score != 6 || event.Outcome.Label != "high" || !event.Outcome.Matched {
		t.Fatalf("unexpected result: score %d outcome %+v", event.Score, event.Outcome)
	}
	if len(event.Answers) != 2 || event.Answers[0].Label != "B" || event.Answers[1].Label != "X" {
		t.Fatalf("unexpected answers log: %+v", event.Answers)
	}
	state, index := engine.State(user)
	if state != StateFinished || index != 2 {
		t.Fatalf("expected finished at 2, got %s at %d", state, index)
	}
	assertInvariant(t, engine, user)
}

func TestQuizEngineInvalidAnswerReprompts(t *testing.T) {
	engine := newTestEngine(t)
	const user = int64(7)

	engine.Start(user)
	if _, err := engine.SubmitAnswer(user, "B"); err != nil {
		t.Fatalf("SubmitAnswer(B): %v", err)
	}

	for _, raw := range []string{"Z", "x", " X", "X ", ""} {
		event, err := engine.SubmitAnswer(user, raw)
		if err != nil {
			t.Fatalf("SubmitAnswer(%q): %v", raw, err)
		}
		if event.Kind != EventReprompt || event.Question.Question != "second" || event.Index != 1 {
			t.Fatalf("SubmitAnswer(%q): expected reprompt of question 1, got %+v", raw, event)
		}
		session, _ := engine.Session(user)
		if session.CurrentQuestion != 1 || session.Score != 4 {
			t.Fatalf("SubmitAnswer(%q) changed state: index %d score %d", raw, session.CurrentQuestion, session.Score)
		}
	}
}

func TestQuizEngineNoActiveSession(t *testing.T) {
	engine := newTestEngine(t)

	if _, err := engine.SubmitAnswer(1, "A"); !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession before start, got %v", err)
	}

	engine.Start(1)
	engine.SubmitAnswer(1, "A")
	engine.SubmitAnswer(1, "Y")
	if _, err := engine.SubmitAnswer(1, "A"); !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession after finish, got %v", err)
	}
}

func TestQuizEngineRestartReplacesSession(t *testing.T) {
	engine := newTestEngine(t)
	const user = int64(5)

	first := engine.Start(user)
	engine.SubmitAnswer(user, "B")

	second := engine.Start(user)
	if second.SessionID == first.SessionID {
		t.Fatalf("restart kept session id %s", first.SessionID)
	}
	session, _ := engine.Session(user)
	if session.CurrentQuestion != 0 || session.Score != 0 || len(session.Answers) != 0 {
		t.Fatalf("restart did not reset session: %+v", session)
	}
}

func TestQuizEngineCancelThenStartIsFresh(t *testing.T) {
	engine := newTestEngine(t)
	const user = int64(9)

	engine.Start(user)
	engine.SubmitAnswer(user, "B")

	if !engine.Cancel(user) {
		t.Fatalf("expected cancel to report an active session")
	}
	if state, _ := engine.State(user); state != StateNotStarted {
		t.Fatalf("expected not started after cancel, got %s", state)
	}
	if engine.Cancel(user) {
		t.Fatalf("second cancel should report nothing to cancel")
	}

	event := engine.Start(user)
	if event.Index != 0 || event.Score != 0 {
		t.Fatalf("unexpected start after cancel: %+v", event)
	}
	session, _ := engine.Session(user)
	if session.Score != 0 || session.CurrentQuestion != 0 || len(session.Answers) != 0 {
		t.Fatalf("session after cancel+start is not fresh: %+v", session)
	}
}

func TestQuizEngineScoreIsSumOfChosenPoints(t *testing.T) {
	engine := newTestEngine(t)
	bank := twoQuestionBank(t)

	var user int64
	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			user++
			q0, _ := bank.Question(0)
			q1, _ := bank.Question(1)

			engine.Start(user)
			engine.SubmitAnswer(user, q0.Options[a])
			event, err := engine.SubmitAnswer(user, q1.Options[b])
			if err != nil {
				t.Fatalf("user %d: %v", user, err)
			}
			want := q0.Points[a] + q1.Points[b]
			if event.Kind != EventResult || event.Score != want {
				t.Fatalf("choices (%d,%d): expected score %d, got %+v", a, b, want, event)
			}
		}
	}
}

func TestQuizEngineAbortsOnInvariantViolation(t *testing.T) {
	observer := &countingObserver{}
	engine := newTestEngine(t, WithObserver(observer))
	const user = int64(11)

	engine.Start(user)
	engine.sessions.withSlot(user, func(slot *sessionSlot) {
		slot.session.CurrentQuestion = 1 // журнал ответов пуст
	})

	_, err := engine.SubmitAnswer(user, "X")
	if !errors.Is(err, ErrSessionAborted) || !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("expected aborted invariant error, got %v", err)
	}
	if state, _ := engine.State(user); state != StateNotStarted {
		t.Fatalf("aborted session should be cleared, got %s", state)
	}
	if observer.aborted != 1 {
		t.Fatalf("expected one abort notification, got %d", observer.aborted)
	}
}

func TestQuizEngineRejectsUncoveredBands(t *testing.T) {
	classifier, err := NewOutcomeClassifier([]OutcomeBand{{Lower: 4, Upper: 7, Label: "only"}}, DefaultOutcome())
	if err != nil {
		t.Fatalf("NewOutcomeClassifier: %v", err)
	}
	if _, err := NewQuizEngine(twoQuestionBank(t), classifier); err == nil {
		t.Fatalf("expected error for bands not covering score 3")
	}
}

func TestQuizEngineConcurrentAnswersDoNotDoubleAdvance(t *testing.T) {
	engine := newTestEngine(t)
	const user = int64(100)
	engine.Start(user)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			event, err := engine.SubmitAnswer(user, "A")
			if err == nil && event.Kind == EventQuestion {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if accepted != 1 {
		t.Fatalf("expected exactly one accepted answer, got %d", accepted)
	}
	session, _ := engine.Session(user)
	if session.CurrentQuestion != 1 || session.Score != 1 {
		t.Fatalf("expected index 1 score 1, got %d and %d", session.CurrentQuestion, session.Score)
	}
}

func TestQuizEngineUsersAreIndependent(t *testing.T) {
	engine := newTestEngine(t)

	var wg sync.WaitGroup
	for u := int64(1); u <= 50; u++ {
		wg.Add(1)
		go func(user int64) {
			defer wg.Done()
			engine.Start(user)
			engine.SubmitAnswer(user, "B")
			engine.SubmitAnswer(user, "Y")
		}(u)
	}
	wg.Wait()

	for u := int64(1); u <= 50; u++ {
		session, ok := engine.Session(u)
		if !ok || !session.Finished || session.Score != 7 {
			t.Fatalf("user %d: unexpected session %+v", u, session)
		}
	}
}

func TestQuizEngineExpireIdle(t *testing.T) {
	sessions := NewSessionStore()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	sessions.now = func() time.Time { return now }
	engine := newTestEngine(t, WithSessionStore(sessions))

	engine.Start(1)
	now = now.Add(20 * time.Minute)
	engine.Start(2)
	now = now.Add(15 * time.Minute)

	if n := engine.ExpireIdle(30 * time.Minute); n != 1 {
		t.Fatalf("expected 1 expired session, got %d", n)
	}
	if state, _ := engine.State(1); state != StateNotStarted {
		t.Fatalf("user 1 should be expired, got %s", state)
	}
	if state, _ := engine.State(2); state != StateAwaitingAnswer {
		t.Fatalf("user 2 should still be awaiting, got %s", state)
	}
	if n := engine.ActiveSessions(); n != 1 {
		t.Fatalf("expected 1 active session, got %d", n)
	}
}

func TestQuizEngineBreadTestDefaults(t *testing.T) {
	bank, err := NewQuestionBank(DefaultQuizQuestions())
	if err != nil {
		t.Fatalf("NewQuestionBank: %v", err)
	}
	classifier, err := NewOutcomeClassifier(DefaultOutcomeBands(), DefaultOutcome())
	if err != nil {
		t.Fatalf("NewOutcomeClassifier: %v", err)
	}
	engine, err := NewQuizEngine(bank, classifier)
	if err != nil {
		t.Fatalf("NewQuizEngine: %v", err)
	}

	lowest, highest := bank.ScoreRange()
	if lowest != 30 || highest != 120 {
		t.Fatalf("expected score range 30..120, got %d..%d", lowest, highest)
	}

	engine.Start(1)
	var event QuizEvent
	for i := 0; i < bank.Count(); i++ {
		q, _ := bank.Question(i)
		best := 0
		for j, p := range q.Points {
			if p > q.Points[best] {
				best = j
			}
		}
		event, err = engine.SubmitAnswer(1, q.Options[best])
		if err != nil {
			t.Fatalf("question %d: %v", i, err)
		}
	}
	if event.Kind != EventResult || event.Score != 120 || event.Outcome.Label != "шаурма" {
		t.Fatalf("unexpected final event: %+v", event)
	}
}

type countingObserver struct {
	mu        sync.Mutex
	started   int
	accepted  int
	rejected  int
	finished  int
	cancelled int
	aborted   int
	outcomes  []string
}

func (o *countingObserver) inc(p *int) {
	o.mu.Lock()
	*p++
	o.mu.Unlock()
}

func (o *countingObserver) QuizStarted()    { o.inc(&o.started) }
func (o *countingObserver) AnswerAccepted() { o.inc(&o.accepted) }
func (o *countingObserver) AnswerRejected() { o.inc(&o.rejected) }
func (o *countingObserver) QuizCancelled()  { o.inc(&o.cancelled) }
func (o *countingObserver) QuizAborted()    { o.inc(&o.aborted) }
func (o *countingObserver) QuizFinished(outcome Outcome) {
	o.mu.Lock()
	o.finished++
	o.outcomes = append(o.outcomes, outcome.Label)
	o.mu.Unlock()
}

func TestQuizEngineNotifiesObserver(t *testing.T) {
	observer := &countingObserver{}
	engine := newTestEngine(t, WithObserver(observer))

	engine.Start(1)
	engine.SubmitAnswer(1, "nope")
	engine.SubmitAnswer(1, "A")
	engine.SubmitAnswer(1, "X")
	engine.Start(2)
	engine.Cancel(2)

	got := fmt.Sprintf("%d %d %d %d %d", observer.started, observer.accepted, observer.rejected, observer.finished, observer.cancelled)
	if got != "2 2 1 1 1" {
		t.Fatalf("unexpected observer counts: %s", got)
	}
	if len(observer.outcomes) != 1 || observer.outcomes[0] != "low" {
		t.Fatalf("unexpected outcomes: %v", observer.outcomes)
	}
}
