package barcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBase64(t *testing.T) {
	dataURL, err := GenerateBase64("2025-0042")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(dataURL, "data:image/png;base64,"))
	assert.Greater(t, len(dataURL), len("data:image/png;base64,"))
}

func TestGenerateBase64EmptyID(t *testing.T) {
	_, err := GenerateBase64("")
	assert.Error(t, err)
}
