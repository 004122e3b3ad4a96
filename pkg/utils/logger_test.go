package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerWritesFile(t *testing.T) {
	dir := t.TempDir()

	logger, err := InitLogger(dir, "Nutri Verse", false)
	require.NoError(t, err)

	logger.Info("hello")
	_ = logger.Sync()

	_, err = os.Stat(filepath.Join(dir, "nutri-verse-auth.log"))
	assert.NoError(t, err)
}

func TestMaskMobile(t *testing.T) {
	assert.Equal(t, "*********3210", MaskMobile("+919876543210"))
	assert.Equal(t, "***", MaskMobile("123"))
	assert.Equal(t, "", MaskMobile(""))
}
