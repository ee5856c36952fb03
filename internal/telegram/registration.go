package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/PoluyanbIch/BreadBot/internal/storage"
	"github.com/PoluyanbIch/BreadBot/internal/zodiac"
)

const (
	genderCallbackPrefix = "gender_"
	birthdayLayout       = "2006-01-02"

	passwordTooLongText = "Пароль слишком длинный: не больше 72 байт (около 36 русских букв). Придумайте пароль покороче:"
)

type regStep int

const (
	regAskPassword regStep = iota + 1
	regAskGender
	regAskBirthday
)

type registration struct {
	step     regStep
	password string
	gender   zodiac.Gender
}

func parseGenderCallback(data string) (zodiac.Gender, bool) {
	if !strings.HasPrefix(data, genderCallbackPrefix) {
		return "", false
	}
	gender := zodiac.Gender(strings.TrimPrefix(data, genderCallbackPrefix))
	return gender, gender.Valid()
}

func (b *Bot) registrationActive(userID int64) bool {
	b.regMu.Lock()
	defer b.regMu.Unlock()
	_, ok := b.registrations[userID]
	return ok
}

func (b *Bot) dropRegistration(userID int64) bool {
	b.regMu.Lock()
	defer b.regMu.Unlock()
	_, ok := b.registrations[userID]
	delete(b.registrations, userID)
	return ok
}

// registrationState возвращает копию состояния, чтобы не держать блокировку во время запросов в БД
func (b *Bot) registrationState(userID int64) (registration, bool) {
	b.regMu.Lock()
	defer b.regMu.Unlock()
	reg, ok := b.registrations[userID]
	if !ok {
		return registration{}, false
	}
	return *reg, true
}

func (b *Bot) setRegistration(userID int64, reg registration) {
	b.regMu.Lock()
	b.registrations[userID] = &reg
	b.regMu.Unlock()
}

func (b *Bot) startRegistration(ctx context.Context, chatID int64, user *tgbotapi.User) {
	exists, err := b.users.Exists(ctx, user.ID)
	if err != nil {
		log.Printf("Error checking user %d: %v", user.ID, err)
		b.sendMessage(chatID, "Не удалось начать регистрацию, попробуйте позже.")
		return
	}
	if exists {
		b.sendMessage(chatID, "Вы уже зарегистрированы.")
		return
	}

	b.engine.Cancel(user.ID)
	b.setRegistration(user.ID, registration{step: regAskPassword})
	b.sendMessage(chatID, "Добро пожаловать! Придумайте пароль:")
}

func (b *Bot) handleRegistrationText(ctx context.Context, chatID int64, user *tgbotapi.User, text string) {
	reg, ok := b.registrationState(user.ID)
	if !ok {
		return
	}

	switch reg.step {
	case regAskPassword:
		password := strings.TrimSpace(text)
		if password == "" {
			b.sendMessage(chatID, "Пароль не может быть пустым. Придумайте пароль:")
			return
		}
		if len(password) > storage.MaxPasswordBytes {
			b.sendMessage(chatID, passwordTooLongText)
			return
		}
		reg.password = password
		reg.step = regAskGender
		b.setRegistration(user.ID, reg)
		b.askGender(chatID)
	case regAskGender:
		b.askGender(chatID)
	case regAskBirthday:
		birthday, err := time.Parse(birthdayLayout, strings.TrimSpace(text))
		if err != nil {
			b.sendMessage(chatID, "Неверный формат. Введите дату рождения в формате ГГГГ-ММ-ДД.")
			return
		}
		b.completeRegistration(ctx, chatID, user, reg, birthday)
	}
}

func (b *Bot) askGender(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "Выберите пол:")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Мужчина", genderCallbackPrefix+string(zodiac.Man))),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Женщина", genderCallbackPrefix+string(zodiac.Woman))),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Хлебушек", genderCallbackPrefix+string(zodiac.Bread))),
	)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending gender keyboard: %v", err)
	}
}

func (b *Bot) handleGender(ctx context.Context, chatID int64, user *tgbotapi.User, messageID int, gender zodiac.Gender) {
	reg, ok := b.registrationState(user.ID)
	if !ok || reg.step != regAskGender {
		b.sendMessage(chatID, "Чтобы зарегистрироваться, отправьте /registration")
		return
	}
	reg.gender = gender
	reg.step = regAskBirthday
	b.setRegistration(user.ID, reg)

	edit := tgbotapi.NewEditMessageText(chatID, messageID, fmt.Sprintf("Выбран пол: %s", gender))
	if _, err := b.api.Send(edit); err != nil {
		log.Printf("Error editing gender message: %v", err)
	}
	b.sendMessage(chatID, "Теперь введите дату рождения в формате ГГГГ-ММ-ДД:")
}

func (b *Bot) completeRegistration(ctx context.Context, chatID int64, user *tgbotapi.User, reg registration, birthday time.Time) {
	registered, err := b.users.Add(ctx, user.ID, reg.password, reg.gender, birthday)
	b.dropRegistration(user.ID)

	switch {
	case errors.Is(err, storage.ErrUserExists):
		b.sendMessage(chatID, "Вы уже зарегистрированы.")
	case errors.Is(err, storage.ErrPasswordTooLong):
		b.sendMessage(chatID, "Пароль слишком длинный. Начните заново: /registration")
	case err != nil:
		log.Printf("Error registering user %d: %v", user.ID, err)
		b.sendMessage(chatID, "Ошибка при сохранении данных. Попробуйте /registration еще раз.")
	default:
		sign, _ := registered.Sign()
		b.sendMessage(chatID, fmt.Sprintf("Регистрация завершена! Ваш знак зодиака: %s", sign))
	}
}

func (b *Bot) handlePrintAstro(ctx context.Context, chatID int64, user *tgbotapi.User) {
	registered, err := b.users.Get(ctx, user.ID)
	if errors.Is(err, storage.ErrUserNotFound) {
		b.sendMessage(chatID, "Сначала зарегистрируйтесь: /registration")
		return
	}
	if err != nil {
		log.Printf("Error loading user %d: %v", user.ID, err)
		b.sendMessage(chatID, "Не удалось загрузить данные, попробуйте позже.")
		return
	}

	sign, err := registered.Sign()
	if err != nil {
		log.Printf("Error reading zodiac of user %d: %v", user.ID, err)
		b.sendMessage(chatID, "Не удалось определить знак зодиака.")
		return
	}
	b.sendMessage(chatID, fmt.Sprintf("Ваш знак зодиака: %s", sign))
}
