package logging

import (
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, log.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, log.InfoLevel, ParseLevel("verbose"))
	assert.Equal(t, log.InfoLevel, ParseLevel(""))
}

func TestInitLogCreatesLogDir(t *testing.T) {
	dir := t.TempDir()
	logfile := filepath.Join(dir, "logs", "mguard.log")

	InitLog(logfile, "debug")
	defer InitLog("", "info")

	assert.Equal(t, log.DebugLevel, log.GetLevel())
	assert.DirExists(t, filepath.Join(dir, "logs"))
}
