package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/PoluyanbIch/BreadBot/internal/service"
)

const (
	repromptText     = "Пожалуйста, выберите один из предложенных вариантов."
	noQuizText       = "Сейчас нет активного теста. Чтобы пройти тест, отправьте /bread_test"
	quizFailedText   = "Что-то пошло не так, тест прерван. Попробуйте начать заново: /bread_test"
	audioCaption     = "Вот аудио для тебя"
	audioMissingText = "Извините, аудиофайл не найден."
)

func (b *Bot) startQuiz(chatID int64, user *tgbotapi.User) {
	b.dropRegistration(user.ID)
	event := b.engine.Start(user.ID)
	b.sendQuestion(chatID, event, "")
}

func (b *Bot) handleQuizAnswer(ctx context.Context, chatID int64, user *tgbotapi.User, text string) {
	event, err := b.engine.SubmitAnswer(user.ID, text)
	switch {
	case errors.Is(err, service.ErrNoActiveSession):
		b.sendMessage(chatID, noQuizText)
		return
	case err != nil:
		log.Printf("Error handling answer of user %d: %v", user.ID, err)
		b.sendRemoveKeyboard(chatID, quizFailedText)
		return
	}

	switch event.Kind {
	case service.EventReprompt:
		b.sendQuestion(chatID, event, repromptText)
	case service.EventQuestion:
		b.sendQuestion(chatID, event, "")
	case service.EventResult:
		b.finishQuiz(ctx, chatID, user, event)
	}
}

// sendQuestion показывает вопрос с вариантами на клавиатуре по два в ряд
func (b *Bot) sendQuestion(chatID int64, event service.QuizEvent, prefix string) {
	text := event.Question.Question
	if prefix != "" {
		text = prefix + "\n\n" + text
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = b.answerKeyboard(event.Question)

	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending question: %v", err)
	}
}

func (b *Bot) answerKeyboard(question service.QuizQuestion) tgbotapi.ReplyKeyboardMarkup {
	options := question.Options
	if b.shuffle {
		options = service.ShuffleOptions(question, nil)
	}

	var rows [][]tgbotapi.KeyboardButton
	for i := 0; i < len(options); i += 2 {
		row := tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(options[i]))
		if i+1 < len(options) {
			row = append(row, tgbotapi.NewKeyboardButton(options[i+1]))
		}
		rows = append(rows, row)
	}

	return tgbotapi.NewOneTimeReplyKeyboard(rows...)
}

func (b *Bot) finishQuiz(ctx context.Context, chatID int64, user *tgbotapi.User, event service.QuizEvent) {
	b.sendRemoveKeyboard(chatID, fmt.Sprintf("Тест завершен! Ваши баллы: %d", event.Score))
	b.sendMessage(chatID, event.Outcome.Description)
	if event.Outcome.AudioFile != "" {
		b.sendAudio(chatID, event.Outcome.AudioFile)
	}

	result := service.QuizResult{
		UserID:    user.ID,
		Username:  user.UserName,
		FirstName: user.FirstName,
		SessionID: event.SessionID,
		Score:     event.Score,
		Outcome:   event.Outcome.Label,
	}
	if err := b.results.Record(ctx, result); err != nil {
		log.Printf("Error saving result of user %d: %v", user.ID, err)
	}
}

func (b *Bot) sendAudio(chatID int64, file string) {
	path := filepath.Join(b.audioDir, file)
	if _, err := os.Stat(path); err != nil {
		log.Printf("Audio %s unavailable: %v", path, err)
		b.sendMessage(chatID, audioMissingText)
		return
	}

	audio := tgbotapi.NewAudio(chatID, tgbotapi.FilePath(path))
	audio.Caption = audioCaption
	if _, err := b.api.Send(audio); err != nil {
		log.Printf("Error sending audio: %v", err)
	}
}

func (b *Bot) sendRemoveKeyboard(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending msg: %v", err)
	}
}

// handleMyBread показывает последний результат пользователя
func (b *Bot) handleMyBread(ctx context.Context, chatID int64, user *tgbotapi.User) {
	last, err := b.results.Last(ctx, user.ID)
	if err != nil {
		log.Printf("Error loading result of user %d: %v", user.ID, err)
		b.sendMessage(chatID, "Не удалось загрузить результат, попробуйте позже.")
		return
	}
	if last == nil {
		b.sendMessage(chatID, "Вы еще не проходили тест. Начать: /bread_test")
		return
	}
	b.sendMessage(chatID, fmt.Sprintf("Ваш последний результат: %s (%d баллов)\n📅 %s", last.Outcome, last.Score, last.Date))
}

func (b *Bot) handleStats(ctx context.Context, chatID int64) {
	stats, err := b.results.OutcomeStats(ctx)
	if err != nil {
		log.Printf("Error loading stats: %v", err)
		b.sendMessage(chatID, "Не удалось загрузить статистику, попробуйте позже.")
		return
	}
	if len(stats) == 0 {
		b.sendMessage(chatID, "🍞 Пока никто не прошел тест. Будьте первым! /bread_test")
		return
	}

	message := "🍞 <b>Какими хлебушками становятся чаще всего</b>\n\n"
	for i, entry := range stats {
		if i == 10 {
			break
		}
		message += fmt.Sprintf("%d. %s - %d\n", i+1, entry.Outcome, entry.Count)
	}

	msg := tgbotapi.NewMessage(chatID, message)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending stats: %v", err)
	}
}
