package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNoActiveSession возвращается, когда у пользователя нет теста в процессе.
	ErrNoActiveSession = errors.New("no active quiz session")
	// ErrInvariantViolation означает внутреннюю ошибку движка, пользователю не показывается.
	ErrInvariantViolation = errors.New("quiz invariant violation")
	// ErrSessionAborted возвращается, когда сессия сброшена из-за внутренней ошибки.
	ErrSessionAborted = errors.New("quiz session aborted")
)

const (
	minOptions = 2
	maxOptions = 4
)

type QuizQuestion struct {
	ID       int
	Question string
	Options  []string
	Points   []int
}

// Validate проверяет структуру вопроса
func (q QuizQuestion) Validate() error {
	if q.Question == "" {
		return fmt.Errorf("question %d: empty prompt", q.ID)
	}
	if len(q.Options) < minOptions || len(q.Options) > maxOptions {
		return fmt.Errorf("question %d: need %d-%d options, got %d", q.ID, minOptions, maxOptions, len(q.Options))
	}
	if len(q.Options) != len(q.Points) {
		return fmt.Errorf("question %d: %d options but %d point values", q.ID, len(q.Options), len(q.Points))
	}
	seen := make(map[string]struct{}, len(q.Options))
	for i, option := range q.Options {
		if option == "" {
			return fmt.Errorf("question %d: option %d is empty", q.ID, i)
		}
		if _, dup := seen[option]; dup {
			return fmt.Errorf("question %d: duplicate option %q", q.ID, option)
		}
		seen[option] = struct{}{}
	}
	for i, p := range q.Points {
		if p < 0 {
			return fmt.Errorf("question %d: option %d has negative points %d", q.ID, i, p)
		}
	}
	return nil
}

// MatchOption ищет ответ среди вариантов. Сравнение точное, с учетом регистра.
func (q QuizQuestion) MatchOption(raw string) (int, bool) {
	for i, option := range q.Options {
		if option == raw {
			return i, true
		}
	}
	return -1, false
}

// PointsFor возвращает баллы за выбранный вариант
func (q QuizQuestion) PointsFor(choice int) (int, error) {
	if choice < 0 || choice >= len(q.Points) {
		return 0, fmt.Errorf("%w: choice %d out of range for question %d", ErrInvariantViolation, choice, q.ID)
	}
	return q.Points[choice], nil
}

func (q QuizQuestion) MinPoints() int {
	lowest := q.Points[0]
	for _, p := range q.Points[1:] {
		lowest = min(lowest, p)
	}
	return lowest
}

func (q QuizQuestion) MaxPoints() int {
	highest := q.Points[0]
	for _, p := range q.Points[1:] {
		highest = max(highest, p)
	}
	return highest
}
