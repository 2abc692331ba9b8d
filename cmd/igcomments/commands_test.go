package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"igcomments/pkg/auth"
	"igcomments/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigInitShowValidate(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "igcomments.yaml")

	require.NoError(t, runConfigInit(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	// never overwrites
	assert.ErrorContains(t, runConfigInit(path), "already exists")

	// the example file is itself a valid configuration
	cfg := config.DefaultConfig()
	require.NoError(t, cfg.LoadFromFile(path))
	assert.Equal(t, config.DefaultConfig(), cfg)
	assert.NoError(t, runConfigValidate(path))

	t.Setenv("IGCOMMENTS_ACCESS_TOKEN", "EAAB1234567890wxyz")
	var out bytes.Buffer
	require.NoError(t, runConfigShow(path, &out))
	assert.Contains(t, out.String(), "EAAB...wxyz")
	assert.NotContains(t, out.String(), "EAAB1234567890wxyz")
	assert.Contains(t, out.String(), "api_version: v17.0")
}

func TestConfigValidateReportsErrors(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("comments:\n  limit: -1\noutput:\n  format: xml\n"), 0600))

	assert.ErrorIs(t, runConfigValidate(path), errAlreadyReported)
}

func TestAuthLoginStatusLogout(t *testing.T) {
	manager, store := auth.NewMockManager()

	var prompt bytes.Buffer
	require.NoError(t, runLogin(manager, "agency", strings.NewReader("EAAB1234567890wxyz\n"), &prompt))
	assert.Contains(t, prompt.String(), `Access token for "agency"`)
	assert.True(t, store.Exists("agency"))

	token, err := manager.Token("agency")
	require.NoError(t, err)
	assert.Equal(t, "EAAB1234567890wxyz", token)

	var out bytes.Buffer
	require.NoError(t, runStatus(manager, &out))
	assert.Contains(t, out.String(), "agency\tEAAB...wxyz\t")
	assert.NotContains(t, out.String(), "EAAB1234567890wxyz")

	require.NoError(t, runLogout(manager, "agency"))
	assert.False(t, store.Exists("agency"))
	assert.ErrorIs(t, runLogout(manager, "agency"), auth.ErrCredentialsNotFound)
}

func TestAuthLoginWithoutTrailingNewline(t *testing.T) {
	manager, _ := auth.NewMockManager()

	require.NoError(t, runLogin(manager, auth.DefaultAccount, strings.NewReader("tok-no-newline"), &bytes.Buffer{}))

	token, err := manager.Token("")
	require.NoError(t, err)
	assert.Equal(t, "tok-no-newline", token)
}

func TestAuthLoginRejectsEmptyToken(t *testing.T) {
	manager, store := auth.NewMockManager()

	err := runLogin(manager, auth.DefaultAccount, strings.NewReader("\n"), &bytes.Buffer{})
	assert.EqualError(t, err, "access token is required")
	assert.Equal(t, 0, store.Count())
}

func TestAccountArg(t *testing.T) {
	assert.Equal(t, auth.DefaultAccount, accountArg(nil))
	assert.Equal(t, auth.DefaultAccount, accountArg([]string{"  "}))
	assert.Equal(t, "agency", accountArg([]string{" agency "}))
}
