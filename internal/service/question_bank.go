package service

import (
	"errors"
	"fmt"
)

// QuestionBank - неизменяемый упорядоченный набор вопросов теста.
type QuestionBank struct {
	questions []QuizQuestion
}

func NewQuestionBank(questions []QuizQuestion) (*QuestionBank, error) {
	if len(questions) == 0 {
		return nil, errors.New("question bank is empty")
	}

	bank := &QuestionBank{questions: make([]QuizQuestion, len(questions))}
	for i, q := range questions {
		q.ID = i
		q.Options = append([]string(nil), q.Options...)
		q.Points = append([]int(nil), q.Points...)
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("invalid question bank: %w", err)
		}
		bank.questions[i] = q
	}
	return bank, nil
}

// Question возвращает копию вопроса по индексу; false означает, что вопросы закончились.
func (b *QuestionBank) Question(index int) (QuizQuestion, bool) {
	if index < 0 || index >= len(b.questions) {
		return QuizQuestion{}, false
	}
	q := b.questions[index]
	q.Options = append([]string(nil), q.Options...)
	q.Points = append([]int(nil), q.Points...)
	return q, true
}

func (b *QuestionBank) Count() int {
	return len(b.questions)
}

// ScoreRange возвращает минимально и максимально возможную сумму баллов.
func (b *QuestionBank) ScoreRange() (int, int) {
	var lowest, highest int
	for _, q := range b.questions {
		lowest += q.MinPoints()
		highest += q.MaxPoints()
	}
	return lowest, highest
}
