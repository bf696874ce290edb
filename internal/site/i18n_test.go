package site

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectLangQueryParamWins(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?lang=zh", nil)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.AddCookie(&http.Cookie{Name: langCookie, Value: "en"})

	assert.Equal(t, "zh", DetectLang(req, "en"))
}

func TestDetectLangCookieBeatsHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.AddCookie(&http.Cookie{Name: langCookie, Value: "zh"})

	assert.Equal(t, "zh", DetectLang(req, "en"))
}

func TestDetectLangAcceptLanguage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.5")

	assert.Equal(t, "zh", DetectLang(req, "en"))
}

func TestDetectLangFallsBackToDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "zh", DetectLang(req, "zh"))
}

func TestDetectLangIgnoresUnsupportedValues(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?lang=fr", nil)
	req.AddCookie(&http.Cookie{Name: langCookie, Value: "de"})

	assert.Equal(t, "en", DetectLang(req, "en"))
}

func TestStringsFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, translations["en"], Strings("nope"))
	assert.Equal(t, translations["zh"], Strings("zh"))
}

func TestTranslationTablesAreAligned(t *testing.T) {
	en := translations["en"]
	zh := translations["zh"]
	require.Equal(t, len(en), len(zh))
	for key := range en {
		_, ok := zh[key]
		assert.True(t, ok, "missing zh translation for %q", key)
	}
}
