package service

// DefaultQuizQuestions возвращает вопросы теста "Какой ты хлебушек" по умолчанию
func DefaultQuizQuestions() []QuizQuestion {
	return []QuizQuestion{
		{Question: "1. Твоё любимое время года?", Options: []string{"зима", "лето", "осень", "весна"}, Points: []int{4, 2, 1, 3}},
		{Question: "2. Выбери, что больше всего тебя описывает?", Options: []string{"экстраверт", "интроверт", "амбиверт", "омниверт"}, Points: []int{1, 4, 2, 3}},
		{Question: "3. Какой у тебя тип темперамента?", Options: []string{"сангвиник", "холерик", "меланхолик", "флегматик"}, Points: []int{1, 2, 4, 3}},
		{Question: "4. Какие шутки вам нравятся?", Options: []string{"про колобка", "абсурдные", "с матами", "жестокие"}, Points: []int{1, 4, 3, 2}},
		{Question: "5. Какой вид науки наиболее близок вам?", Options: []string{"естественные", "технические", "социальные", "гуманитарные"}, Points: []int{3, 4, 2, 1}},
		{Question: "6. Какие цвета вас больше всего привлекают?", Options: []string{"холодные", "тёплые", "нейтральные", "всё и сразу"}, Points: []int{4, 3, 2, 1}},
		{Question: "7. Какой фильм из предложенных вам нравится больше всего?", Options: []string{"1+1", "Хатико", "Шерлок Холмс", "Голодные игры"}, Points: []int{4, 1, 2, 3}},
		{Question: "8. Какой жанр музыки вам больше всего нравится?", Options: []string{"поп", "рок", "хип-хоп", "классическая"}, Points: []int{2, 4, 1, 3}},
		{Question: "9. Какое ваше любимое времяпровождение?", Options: []string{"чтение книг", "просмотр сериалов", "спорт", "прогулки"}, Points: []int{1, 4, 2, 3}},
		{Question: "10. Какой ваш любимый напиток?", Options: []string{"газировка", "кофе", "чай", "сок"}, Points: []int{4, 1, 2, 3}},
		{Question: "11. Что вы предпочитаете?", Options: []string{"путешествия", "просмотр фильма", "вечеринки", "творчество"}, Points: []int{3, 4, 1, 2}},
		{Question: "12. Какое качество вы цените в себе больше всего?", Options: []string{"надёжность", "креативность", "общительность", "спокойствие"}, Points: []int{4, 2, 1, 3}},
		{Question: "13. Как вы реагируете на неожиданные изменения в планах?", Options: []string{"спокойно адаптируюсь", "немного расстраиваюсь", "сильно переживаю", "радуюсь"}, Points: []int{3, 4, 2, 1}},
		{Question: "14. Какой напиток вы выберете к завтраку?", Options: []string{"кофе", "чай", "сок", "вода"}, Points: []int{1, 3, 2, 4}},
		{Question: "15. Как вы относитесь к новым знакомствам?", Options: []string{"с энтузиазмом", "с осторожностью", "только проверенные друзья", "зависит от настроения"}, Points: []int{1, 3, 4, 2}},
		{Question: "16. Какой стиль одежды вам ближе?", Options: []string{"классический", "спортивный", "кэжуал", "экстравагантный"}, Points: []int{3, 2, 4, 1}},
		{Question: "17. Как вы справляетесь с конфликтными ситуациями?", Options: []string{"компромисс", "борьба до конца", "избегание", "когда как"}, Points: []int{2, 3, 1, 4}},
		{Question: "18. Какую кухню вы предпочитаете?", Options: []string{"итальянскую", "азиатскую", "домашнюю", "экзотическую"}, Points: []int{4, 2, 3, 1}},
		{Question: "19. Как вы относитесь к работе в команде?", Options: []string{"нравится", "я за самостоятельность", "могу и так и так", "когда как"}, Points: []int{2, 4, 3, 1}},
		{Question: "20. Какой жанр фильмов вам нравится больше всего?", Options: []string{"комедия", "драма", "фантастика", "документальный"}, Points: []int{4, 1, 3, 2}},
		{Question: "21. С чем лучше всего есть хлеб?", Options: []string{"ни с чем", "с сыром", "с супом", "с маслом"}, Points: []int{4, 3, 2, 1}},
		{Question: "22. Сколько хлеб можно хранить?", Options: []string{"день", "неделю", "чёрствый лучше", "вечность"}, Points: []int{3, 4, 1, 2}},
		{Question: "23. Какой ты хлеб в культуре?", Options: []string{"«Булочник» Кустодиева", "«Баллада о хлебе»", "«Колобок»", "«Советские хлебы» Машкова"}, Points: []int{4, 2, 3, 1}},
		{Question: "24. Что вы думаете о еде на ночь?", Options: []string{"да, конечно!", "нет, потолстею", "немного", "не ем после шести"}, Points: []int{4, 1, 3, 2}},
		{Question: "25. Кто ты на пикнике с шашлыком?", Options: []string{"лаваш", "лепёшка", "корочка", "уксус"}, Points: []int{4, 3, 2, 1}},
		{Question: "26. Какой у тебя любимый бутерброд?", Options: []string{"с майонезом и кетчупом", "с колбасой", "горячий", "тост"}, Points: []int{2, 4, 3, 1}},
		{Question: "27. Какой у тебя любимый соус?", Options: []string{"сырный", "кисло-сладкий", "кетчунез", "терияки"}, Points: []int{4, 3, 2, 1}},
		{Question: "28. Что без хлеба не едят?", Options: []string{"борщ", "стейк", "ничего", "всё"}, Points: []int{3, 2, 1, 4}},
		{Question: "29. Какое у тебя любимое печенье в виде животных?", Options: []string{"зоологическое", "фигурное песочное", "«Забавные зверушки»", "«Зоопарк»"}, Points: []int{2, 1, 4, 3}},
		{Question: "30. Какая самая легендарная выпечка?", Options: []string{"тульский пряник", "калач", "пасхальный кулич", "чесночный хлеб"}, Points: []int{3, 1, 2, 4}},
	}
}

// DefaultOutcomeBands покрывает диапазон 30..120 встроенного теста
func DefaultOutcomeBands() []OutcomeBand {
	return []OutcomeBand{
		{Lower: 30, Upper: 36, Label: "смак", Description: "Вы - смак. Вы душа компании и очень общительный", AudioFile: "smak.mp3"},
		{Lower: 37, Upper: 42, Label: "бабушкин пирожок", Description: "Вы - бабушкин пирожок. Ассоциация с чем-то домашним, тёплым, ностальгическим.", AudioFile: "pirozhok.mp3"},
		{Lower: 43, Upper: 48, Label: "булочка с корицей", Description: "Вы - булочка с корицей. Думаю, вы жизнерадостный и позитивный", AudioFile: "cinnamon_bun.mp3"},
		{Lower: 49, Upper: 54, Label: "булочка с маком", Description: "Вы - булочка с маком. Вы очень милый, добрый и общительный человек)", AudioFile: "poppy_bun.mp3"},
		{Lower: 55, Upper: 60, Label: "буханка", Description: "Вы - буханка. Чёрный хлеб это хорошо)", AudioFile: "bukhanka.mp3"},
		{Lower: 61, Upper: 66, Label: "батон", Description: "Вы - батон. Вы самый обычный человек, это не плохо и не хорошо", AudioFile: "baton.mp3"},
		{Lower: 67, Upper: 72, Label: "чуду", Description: "Вы - чуду (лепёшка с начинкой). Думаю, вы очень весёлый)", AudioFile: "chudu.mp3"},
		{Lower: 73, Upper: 78, Label: "ватрушка с творогом", Description: "Вы - ватрушка с творогом. Думаю, вы добрый человек, очень интересный в общении", AudioFile: "vatrushka.mp3"},
		{Lower: 79, Upper: 84, Label: "багет", Description: "Вы - багет. Вы позитивный и добрый человек, возможно, общительный", AudioFile: "baguette.mp3"},
		{Lower: 85, Upper: 90, Label: "чиабатта", Description: "Вы - чиабатта. Вы хороший, доброжелательный человек", AudioFile: "ciabatta.mp3"},
		{Lower: 91, Upper: 96, Label: "эчпочмак", Description: "Вы - эчпочмак. Вы весёлый человек, возможно, душа компании", AudioFile: "echpochmak.mp3"},
		{Lower: 97, Upper: 102, Label: "блины", Description: "Вы - блины. Ассоциация с вами - уют, тепло и комфорт)", AudioFile: "bliny.mp3"},
		{Lower: 103, Upper: 108, Label: "просфора", Description: "Вы - просфора (богослужебный хлеб). Вы очень милый человек)", AudioFile: "prosfora.mp3"},
		{Lower: 109, Upper: 114, Label: "хлеб из майнкрафта", Description: "Вы - хлеб из майнкрафта. Думаю, вы очень хороший, добрый человек, вы как и хлеб из майнкрафта - легенда)", AudioFile: "minecraft_bread.mp3"},
		{Lower: 115, Upper: 120, Label: "шаурма", Description: "Вы - шаурма. Вы кайфовый человек, но скорее всего стеснительный и не очень общительный", AudioFile: "shaurma.mp3"},
	}
}

// DefaultOutcome - результат, когда баллы не попали ни в один диапазон
func DefaultOutcome() Outcome {
	return Outcome{Label: "участник", Description: "Спасибо за участие!"}
}
