package telegram

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/PoluyanbIch/BreadBot/internal/service"
	"github.com/PoluyanbIch/BreadBot/internal/storage"
	"github.com/PoluyanbIch/BreadBot/internal/zodiac"
)

// sender - часть tgbotapi.BotAPI, которой пользуются обработчики
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type UserRepository interface {
	Exists(ctx context.Context, userID int64) (bool, error)
	Add(ctx context.Context, userID int64, password string, gender zodiac.Gender, birthday time.Time) (storage.User, error)
	Get(ctx context.Context, userID int64) (storage.User, error)
}

type UpdateCounter interface {
	UpdateReceived(kind string)
}

type Deps struct {
	Engine  *service.QuizEngine
	Results service.ResultService
	Users   UserRepository
	Counter UpdateCounter

	AudioDir       string
	ShuffleOptions bool
	Workers        int
	Debug          bool
}

type Bot struct {
	api    sender
	client *tgbotapi.BotAPI

	engine   *service.QuizEngine
	results  service.ResultService
	users    UserRepository
	counter  UpdateCounter
	audioDir string
	shuffle  bool
	workers  int
	now      func() time.Time

	regMu         sync.Mutex
	registrations map[int64]*registration
}

func NewBot(token string, deps Deps) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	api.Debug = deps.Debug

	b := newBot(api, deps)
	b.client = api
	return b, nil
}

func newBot(api sender, deps Deps) *Bot {
	workers := deps.Workers
	if workers < 1 {
		workers = 1
	}
	return &Bot{
		api:           api,
		engine:        deps.Engine,
		results:       deps.Results,
		users:         deps.Users,
		counter:       deps.Counter,
		audioDir:      deps.AudioDir,
		shuffle:       deps.ShuffleOptions,
		workers:       workers,
		now:           time.Now,
		registrations: make(map[int64]*registration),
	}
}

// Start читает обновления и раздает их воркерам до отмены ctx.
func (b *Bot) Start(ctx context.Context) error {
	if b.client == nil {
		return errors.New("bot has no telegram client")
	}
	log.Printf("Authorised on account: %s", b.client.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.client.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		b.client.StopReceivingUpdates()
	}()

	NewDispatcher(b.workers, b.HandleUpdate).Run(ctx, updates)
	log.Println("Bot stopped")
	return nil
}

// HandleUpdate обрабатывает одно обновление. Обновления одного пользователя должны приходить по очереди.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		b.count("message")
		b.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.count("callback")
		b.handleCallback(ctx, update.CallbackQuery)
	default:
		b.count("other")
	}
}

func (b *Bot) count(kind string) {
	if b.counter != nil {
		b.counter.UpdateReceived(kind)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || msg.Chat == nil {
		return
	}
	chatID := msg.Chat.ID
	user := msg.From

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.handleStart(chatID, user)
		case "help":
			b.handleHelp(chatID)
		case "time":
			b.handleTime(chatID)
		case "date":
			b.handleDate(chatID)
		case "joke":
			b.handleJoke(chatID)
		case "quote":
			b.handleQuote(chatID)
		case "id":
			b.handleID(chatID, user)
		case "bread_test":
			b.startQuiz(chatID, user)
		case "cancel":
			b.handleCancel(chatID, user)
		case "registration":
			b.startRegistration(ctx, chatID, user)
		case "print_astro":
			b.handlePrintAstro(ctx, chatID, user)
		case "my_bread":
			b.handleMyBread(ctx, chatID, user)
		case "bread_stats":
			b.handleStats(ctx, chatID)
		default:
			b.sendMessage(chatID, "Неизвестная команда. Список команд: /help")
		}
		return
	}

	if b.registrationActive(user.ID) {
		b.handleRegistrationText(ctx, chatID, user, msg.Text)
		return
	}
	b.handleQuizAnswer(ctx, chatID, user, msg.Text)
}

func (b *Bot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	callbackConfig := tgbotapi.NewCallback(callback.ID, "")
	if _, err := b.api.Request(callbackConfig); err != nil {
		log.Printf("Error Answering Callback: %v", err)
	}
	if callback.Message == nil || callback.Message.Chat == nil || callback.From == nil {
		return
	}

	chatID := callback.Message.Chat.ID
	gender, ok := parseGenderCallback(callback.Data)
	if !ok {
		b.sendMessage(chatID, "Неизвестная команда")
		return
	}
	b.handleGender(ctx, chatID, callback.From, callback.Message.MessageID, gender)
}

func (b *Bot) handleCancel(chatID int64, user *tgbotapi.User) {
	regCancelled := b.dropRegistration(user.ID)
	quizCancelled := b.engine.Cancel(user.ID)

	msg := tgbotapi.NewMessage(chatID, "")
	switch {
	case quizCancelled:
		msg.Text = "Тест отменен."
	case regCancelled:
		msg.Text = "Регистрация отменена."
	default:
		msg.Text = "Нечего отменять."
	}
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending cancel message: %v", err)
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending msg: %v", err)
	}
}
