package zodiac

import (
	"fmt"
	"time"
)

type Sign int

const (
	Capricorn Sign = iota + 1
	Aquarius
	Pisces
	Aries
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
)

var signNames = map[Sign]string{
	Capricorn:   "Козерог",
	Aquarius:    "Водолей",
	Pisces:      "Рыбы",
	Aries:       "Овен",
	Taurus:      "Телец",
	Gemini:      "Близнецы",
	Cancer:      "Рак",
	Leo:         "Лев",
	Virgo:       "Дева",
	Libra:       "Весы",
	Scorpio:     "Скорпион",
	Sagittarius: "Стрелец",
}

func (s Sign) String() string {
	if name, ok := signNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Sign(%d)", int(s))
}

// в каждом месяце со дня day начинается знак after
var boundaries = [12]struct {
	day           int
	before, after Sign
}{
	{21, Capricorn, Aquarius},
	{19, Aquarius, Pisces},
	{21, Pisces, Aries},
	{20, Aries, Taurus},
	{21, Taurus, Gemini},
	{22, Gemini, Cancer},
	{23, Cancer, Leo},
	{23, Leo, Virgo},
	{23, Virgo, Libra},
	{24, Libra, Scorpio},
	{23, Scorpio, Sagittarius},
	{22, Sagittarius, Capricorn},
}

// SignFor определяет знак зодиака по дню и месяцу рождения
func SignFor(day int, month time.Month) (Sign, error) {
	if month < time.January || month > time.December {
		return 0, fmt.Errorf("invalid month %d", month)
	}
	// 2000 - високосный, 29 февраля допустимо
	if d := time.Date(2000, month, day, 0, 0, 0, 0, time.UTC); day < 1 || d.Month() != month {
		return 0, fmt.Errorf("invalid day %d for month %s", day, month)
	}

	b := boundaries[month-1]
	if day >= b.day {
		return b.after, nil
	}
	return b.before, nil
}

type Gender string

const (
	Man   Gender = "man"
	Woman Gender = "woman"
	Bread Gender = "bread"
)

var genderOffsets = map[Gender]int{
	Man:   0,
	Woman: 12,
	Bread: 24,
}

func (g Gender) Valid() bool {
	_, ok := genderOffsets[g]
	return ok
}

// ID возвращает идентификатор описания знака для пола: 1..12 мужские, 13..24 женские, 25..36 хлебные
func ID(gender Gender, sign Sign) (int, error) {
	offset, ok := genderOffsets[gender]
	if !ok {
		return 0, fmt.Errorf("unknown gender %q", gender)
	}
	if sign < Capricorn || sign > Sagittarius {
		return 0, fmt.Errorf("unknown sign %d", int(sign))
	}
	return offset + int(sign), nil
}

// FromID - обратное преобразование ID
func FromID(id int) (Gender, Sign, error) {
	if id < 1 || id > 36 {
		return "", 0, fmt.Errorf("zodiac id %d out of range", id)
	}
	sign := Sign((id-1)%12 + 1)
	for gender, offset := range genderOffsets {
		if id-offset >= 1 && id-offset <= 12 {
			return gender, sign, nil
		}
	}
	return "", 0, fmt.Errorf("zodiac id %d out of range", id)
}
