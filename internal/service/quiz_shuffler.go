package service

import (
	"math/rand"
	"time"
)

// ShuffleOptions возвращает варианты ответа в случайном порядке для показа.
// Порядок вопросов не меняется, а ответ сверяется по тексту, поэтому баллы не сдвигаются.
func ShuffleOptions(question QuizQuestion, r *rand.Rand) []string {
	// Создаем копию, чтобы не изменять вопрос банка
	shuffled := make([]string, len(question.Options))
	copy(shuffled, question.Options)

	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	// Алгоритм Фишера-Йейтса
	for i := len(shuffled) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled
}
