package i18n_test

import (
	"testing"

	"github.com/aziyat1977/Inter-1.1/internal/i18n"
	"github.com/aziyat1977/Inter-1.1/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestTranslate_KnownKey(t *testing.T) {
	assert.Equal(t, "Back", i18n.Translate("back", models.English))
	assert.Equal(t, "Назад", i18n.Translate("back", models.Russian))
	assert.Equal(t, "Orqaga", i18n.Translate("back", models.Uzbek))
}

func TestTranslate_UnknownKeyFallsBack(t *testing.T) {
	for _, lang := range models.Languages {
		t.Run(string(lang), func(t *testing.T) {
			assert.Equal(t, "noSuchKey", i18n.Translate("noSuchKey", lang))
			assert.Equal(t, "", i18n.Translate("", lang))
		})
	}
}

func TestTranslate_UnsupportedLanguageFallsBackToKey(t *testing.T) {
	assert.Equal(t, "back", i18n.Translate("back", models.Language("fr")))
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want models.Language
	}{
		{"en", models.English},
		{"RU", models.Russian},
		{" uz ", models.Uzbek},
		{"fr", models.English},
		{"", models.English},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, i18n.ParseLanguage(tt.in))
		})
	}
}

func TestTranslatorAndTable(t *testing.T) {
	tr := i18n.Translator{Lang: models.Uzbek}
	assert.Equal(t, "Boshlash", tr.T("start"))

	table := i18n.Table(models.Russian)
	assert.Equal(t, "Начать", table["start"])
	assert.Equal(t, "XP", table["xpEarned"])
}
