package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveLang(t *testing.T) {
	assert.Equal(t, "si", ResolveLang("si", ""))
	assert.Equal(t, "si", ResolveLang("si-LK", "en"))
	assert.Equal(t, "en", ResolveLang("", "en-US,en;q=0.9"))
	assert.Equal(t, "si", ResolveLang("", "si-LK,si;q=0.9,en;q=0.8"))

	// unsupported languages fall back to the default
	assert.Equal(t, "en", ResolveLang("fr", ""))
	assert.Equal(t, "en", ResolveLang("", "de-DE,de;q=0.9"))
	assert.Equal(t, "en", ResolveLang("", ""))
}

func TestSetDefaultLanguage(t *testing.T) {
	SetDefaultLanguage("si")
	defer SetDefaultLanguage("en")

	assert.Equal(t, "si", ResolveLang("", ""))
	assert.Equal(t, "si", ResolveLang("fr", ""))
	// explicit supported choices still win
	assert.Equal(t, "en", ResolveLang("en", ""))
}
