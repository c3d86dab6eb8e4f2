package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Load_fullConfig(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "driver.toml")
	contents := `
[driver]
max_stack_size = 512
trace = true

[lexer]
error_skip = true
`
	assert.NoError(os.WriteFile(path, []byte(contents), 0644))

	cfg, err := Load(path)
	assert.NoError(err)
	assert.Equal(512, cfg.Driver.MaxStackSize)
	assert.True(cfg.Driver.Trace)
	assert.True(cfg.Lexer.ErrorSkip)
}

func Test_Load_partialConfigDefaultsZero(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "driver.toml")
	assert.NoError(os.WriteFile(path, []byte("[driver]\ntrace = true\n"), 0644))

	cfg, err := Load(path)
	assert.NoError(err)
	assert.Equal(0, cfg.Driver.MaxStackSize)
	assert.True(cfg.Driver.Trace)
	assert.False(cfg.Lexer.ErrorSkip)
}

func Test_Load_missingFile(t *testing.T) {
	assert := assert.New(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(err)
}
