// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "upstage-api-key"), []byte("  sk-test-123\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty-key"), []byte("   \n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("ignored"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))

	loaded, err := Load(dir)
	require.NoError(t, err)

	// Values are trimmed; empty, hidden and directory entries are
	// dropped.
	assert.Equal(t, map[string]string{"upstage-api-key": "sk-test-123"}, loaded)
}

func TestLoadMissingDir(t *testing.T) {
	loaded, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestLoadDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("HANDOVER_TEST_DOTENV=from-dotenv\n"), 0o600))
	t.Setenv("HANDOVER_TEST_DOTENV", "")
	os.Unsetenv("HANDOVER_TEST_DOTENV")

	require.NoError(t, LoadDotenv(path))
	assert.Equal(t, "from-dotenv", os.Getenv("HANDOVER_TEST_DOTENV"))
}

func TestLoadDotenvMissingFile(t *testing.T) {
	assert.NoError(t, LoadDotenv(filepath.Join(t.TempDir(), ".env")))
}

func TestAPIKey(t *testing.T) {
	t.Run("explicit wins", func(t *testing.T) {
		t.Setenv("UPSTAGE_API_KEY", "from-env")
		got := APIKey("explicit", map[string]string{"upstage-api-key": "from-file"})
		assert.Equal(t, "explicit", got)
	})

	t.Run("key file beats environment", func(t *testing.T) {
		t.Setenv("UPSTAGE_API_KEY", "from-env")
		got := APIKey("", map[string]string{"upstage-api-key": "from-file"})
		assert.Equal(t, "from-file", got)
	})

	t.Run("environment fallback", func(t *testing.T) {
		t.Setenv("UPSTAGE_API_KEY", "from-env")
		got := APIKey("", nil)
		assert.Equal(t, "from-env", got)
	})

	t.Run("nothing configured", func(t *testing.T) {
		t.Setenv("UPSTAGE_API_KEY", "")
		os.Unsetenv("UPSTAGE_API_KEY")
		got := APIKey("", map[string]string{})
		assert.Empty(t, got)
	})
}
