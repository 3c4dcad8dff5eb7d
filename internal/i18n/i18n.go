// Package i18n resolves interface strings for the supported languages.
package i18n

import (
	"strings"

	"github.com/aziyat1977/Inter-1.1/internal/models"
)

type entry map[models.Language]string

var uiText = map[string]entry{
	"studentMode":   {models.English: "Student Mode", models.Russian: "Студент", models.Uzbek: "Talaba"},
	"teacherMode":   {models.English: "Teacher Mode", models.Russian: "Учитель", models.Uzbek: "O'qituvchi"},
	"kahootMode":    {models.English: "Speed Battle", models.Russian: "Битва", models.Uzbek: "Tezkor Jang"},
	"vocabMode":     {models.English: "Vocab & Drill", models.Russian: "Словарь", models.Uzbek: "Lug'at"},
	"back":          {models.English: "Back", models.Russian: "Назад", models.Uzbek: "Orqaga"},
	"next":          {models.English: "Next", models.Russian: "Далее", models.Uzbek: "Keyingi"},
	"submit":        {models.English: "Go", models.Russian: "Пуск", models.Uzbek: "Ketting"},
	"reveal":        {models.English: "Show", models.Russian: "Показать", models.Uzbek: "Ko'rsatish"},
	"check":         {models.English: "Check", models.Russian: "Проверить", models.Uzbek: "Tekshirish"},
	"correct":       {models.English: "Yes!", models.Russian: "Да!", models.Uzbek: "Ha!"},
	"tryAgain":      {models.English: "Again", models.Russian: "Еще раз", models.Uzbek: "Qayta"},
	"score":         {models.English: "Score", models.Russian: "Счет", models.Uzbek: "Hisob"},
	"loading":       {models.English: "Loading...", models.Russian: "Загрузка...", models.Uzbek: "Yuklanmoqda..."},
	"unitTitle":     {models.English: "Unit 1: Trends", models.Russian: "Раздел 1: Тренды", models.Uzbek: "1-Bölüm: Trendlar"},
	"xpEarned":      {models.English: "XP", models.Russian: "XP", models.Uzbek: "XP"},
	"dayStreak":     {models.English: "Streak", models.Russian: "Серия", models.Uzbek: "Seriya"},
	"start":         {models.English: "Start", models.Russian: "Начать", models.Uzbek: "Boshlash"},
	"instructions":  {models.English: "Instructions", models.Russian: "Инфо", models.Uzbek: "Info"},
	"study":         {models.English: "Study", models.Russian: "Учить", models.Uzbek: "O'qish"},
	"quiz":          {models.English: "Quiz", models.Russian: "Тест", models.Uzbek: "Test"},
	"levelUp":       {models.English: "Level Up!", models.Russian: "Новый уровень!", models.Uzbek: "Yangi daraja!"},
	"yourAnswer":    {models.English: "Your answer...", models.Russian: "Ваш ответ...", models.Uzbek: "Javobingiz..."},
	"badgeUnlocked": {models.English: "Badge unlocked!", models.Russian: "Новый значок!", models.Uzbek: "Yangi nishon!"},
	"battleOver":    {models.English: "Battle over!", models.Russian: "Битва окончена!", models.Uzbek: "Jang tugadi!"},
	"feedbackReady": {models.English: "Your teacher's note is ready", models.Russian: "Отзыв готов", models.Uzbek: "Fikr tayyor"},
}

// Translate returns the string for key in lang. A missing key, or a key with
// no entry for lang, yields the key itself.
func Translate(key string, lang models.Language) string {
	if e, ok := uiText[key]; ok {
		if s := e[lang]; s != "" {
			return s
		}
	}
	return key
}

// Supported reports whether lang is one of models.Languages.
func Supported(lang models.Language) bool {
	for _, l := range models.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// ParseLanguage maps a language code to a supported language, falling back
// to English for anything unrecognised.
func ParseLanguage(code string) models.Language {
	lang := models.Language(strings.ToLower(strings.TrimSpace(code)))
	if Supported(lang) {
		return lang
	}
	return models.English
}

// Translator binds a language for repeated lookups.
type Translator struct {
	Lang models.Language
}

func (t Translator) T(key string) string {
	return Translate(key, t.Lang)
}

// Table returns every known key resolved for lang.
func Table(lang models.Language) map[string]string {
	out := make(map[string]string, len(uiText))
	for k := range uiText {
		out[k] = Translate(k, lang)
	}
	return out
}
