package i18nx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslator_Message(t *testing.T) {
	tr, err := NewTranslator()
	require.NoError(t, err)

	en := tr.Message("en", "info.confirmation_code.sent")
	ru := tr.Message("ru", "info.confirmation_code.sent")

	assert.NotEmpty(t, en)
	assert.NotEmpty(t, ru)
	assert.NotEqual(t, en, ru)

	// unknown languages fall back to English
	assert.Equal(t, en, tr.Message("de", "info.confirmation_code.sent"))
	assert.Equal(t, en, tr.Message("", "info.confirmation_code.sent"))

	// ru-RU resolves to the Russian bundle
	assert.Equal(t, ru, tr.Message("ru-RU", "info.confirmation_code.sent"))
}

func TestTranslator_MessageMissingKey(t *testing.T) {
	tr, err := NewTranslator()
	require.NoError(t, err)

	assert.Equal(t, "no.such.key", tr.Message("en", "no.such.key"))
}
