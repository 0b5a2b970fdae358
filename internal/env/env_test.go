package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	t.Setenv("TEST_STRING", "value")
	t.Setenv("TEST_INT", " 8080 ")
	t.Setenv("TEST_BAD_INT", "eighty")
	t.Setenv("TEST_BOOL", "false")
	t.Setenv("TEST_DURATION", "5s")
	t.Setenv("TEST_LIST", "http://a.test, ,http://b.test")
	t.Setenv("TEST_EMPTY", "")

	assert.Equal(t, "value", GetString("TEST_STRING", "default"))
	assert.Equal(t, "default", GetString("TEST_UNSET", "default"))
	assert.Equal(t, "", GetString("TEST_EMPTY", "default"))

	assert.Equal(t, 8080, GetInt("TEST_INT", 1))
	assert.Equal(t, 1, GetInt("TEST_BAD_INT", 1))
	assert.Equal(t, 1, GetInt("TEST_UNSET", 1))

	assert.False(t, GetBool("TEST_BOOL", true))
	assert.True(t, GetBool("TEST_UNSET", true))

	assert.Equal(t, 5*time.Second, GetDuration("TEST_DURATION", time.Second))
	assert.Equal(t, time.Second, GetDuration("TEST_UNSET", time.Second))

	assert.Equal(t, []string{"http://a.test", "http://b.test"}, GetStrings("TEST_LIST", nil))
	assert.Equal(t, []string{"*"}, GetStrings("TEST_UNSET", []string{"*"}))
	assert.Empty(t, GetStrings("TEST_EMPTY", []string{"*"}))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("ENV_LOAD_NEW=from-file\nENV_LOAD_SET=from-file\n"), 0o600))

	t.Setenv("ENV_LOAD_SET", "from-process")
	t.Setenv("ENV_LOAD_NEW", "")
	require.NoError(t, os.Unsetenv("ENV_LOAD_NEW"))

	require.NoError(t, Load(path))

	assert.Equal(t, "from-file", GetString("ENV_LOAD_NEW", ""))
	assert.Equal(t, "from-process", GetString("ENV_LOAD_SET", ""))

	assert.Error(t, Load(filepath.Join(t.TempDir(), "missing.env")))
}
