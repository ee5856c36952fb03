package telegram

import (
	"fmt"
	"html"
	"log"
	"math/rand"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var jokes = []string{
	"Почему программисты не любят природу? Потому что в ней слишком много багов.",
	"Какой язык программирования самый оптимистичный? Go, потому что он всегда возвращает ошибку честно!",
	"Почему Java разработчики предпочитают темный кофе? Потому что светлый кофе вызывает исключение!",
}

var quotes = []string{
	"Будущее зависит от того, что вы делаете сегодня. - Махатма Ганди",
	"Не бойтесь делать ошибки. Учитесь на них. - Ричард Брэнсон",
	"Секрет успеха в том, чтобы начать. - Марк Твен",
}

const helpText = "Я могу помочь со следующими командами:\n" +
	"/start - начать общение\n" +
	"/help - помощь\n" +
	"/time - текущее время\n" +
	"/date - текущая дата\n" +
	"/joke - получить шутку\n" +
	"/quote - получить цитату\n" +
	"/id - ваш Telegram ID\n" +
	"/registration - регистрация\n" +
	"/print_astro - выводит ваш знак зодиака\n" +
	"/bread_test - тест 'какой ты хлебушек'\n" +
	"/my_bread - ваш последний результат теста\n" +
	"/bread_stats - статистика результатов\n" +
	"/cancel - прервать тест или регистрацию"

func (b *Bot) handleStart(chatID int64, user *tgbotapi.User) {
	text := fmt.Sprintf(`Привет <a href="tg://user?id=%d">%s</a>! Спасибо, что используешь этот бот. Загляни в перечень команд написав /help`,
		user.ID, html.EscapeString(user.FirstName))

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending start message: %v", err)
	}
}

func (b *Bot) handleHelp(chatID int64) {
	b.sendMessage(chatID, helpText)
}

func (b *Bot) handleTime(chatID int64) {
	b.sendMessage(chatID, "Текущее время: "+b.now().Format("15:04:05"))
}

func (b *Bot) handleDate(chatID int64) {
	b.sendMessage(chatID, "Текущая дата: "+b.now().Format("2006-01-02"))
}

func (b *Bot) handleJoke(chatID int64) {
	b.sendMessage(chatID, jokes[rand.Intn(len(jokes))])
}

func (b *Bot) handleQuote(chatID int64) {
	b.sendMessage(chatID, quotes[rand.Intn(len(quotes))])
}

func (b *Bot) handleID(chatID int64, user *tgbotapi.User) {
	b.sendMessage(chatID, fmt.Sprintf("Ваш Telegram ID: %d", user.ID))
}
