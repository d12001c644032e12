package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/pagetest.net/internal/adapter/crypto"
	"gitlab.com/pagetest.net/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	out, err := execute(t, "token", "--subject", "ci")
	require.NoError(t, err)

	tok := strings.TrimSpace(out)
	tokens := crypto.NewTokenService(&config.JwtConfig{Secret: "s3cret"})
	ok, err := tokens.VerifyTokenHMAC(context.Background(), tok)
	require.NoError(t, err)
	assert.True(t, ok)

	claims, err := tokens.DecodeTokenPayload(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "ci", claims.Subject)
}

func TestTokenCommand_NoSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := execute(t, "token")
	assert.Error(t, err)
}

func TestEnvFileIsLoaded(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ci.env"), []byte("ARTIFACTS_DIR=from-env-file\n"), 0o644))
	t.Chdir(dir)
	t.Setenv("ARTIFACTS_DIR", "")
	require.NoError(t, os.Unsetenv("ARTIFACTS_DIR"))

	envFlag = "ci"
	t.Cleanup(func() { envFlag = "" })
	require.NoError(t, initConfig())
	assert.Equal(t, "from-env-file", sysCfg.ArtifactConfig.Dir)
}

func TestMissingEnvFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := execute(t, "--env", "nope", "token")
	assert.ErrorContains(t, err, "nope.env")
}

func TestRunCommand_RejectsUnknownFormat(t *testing.T) {
	_, err := execute(t, "run", "--format", "xml", "a.spec.js")
	assert.ErrorContains(t, err, "unknown output format")
}
