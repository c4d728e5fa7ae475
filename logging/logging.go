package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	log "github.com/sirupsen/logrus"
)

const (
	RotationTime = 24 * time.Hour
	MaxAge       = 30 * 24 * time.Hour
)

// InitLog points the global logrus logger at a daily rotated file plus stdout.
// An empty logfile keeps stdout only.
func InitLog(logfile string, level string) {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetLevel(ParseLevel(level))

	if logfile == "" {
		log.SetOutput(os.Stdout)
		return
	}

	writer, err := newRotateWriter(logfile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init rotate log %s failed, err:%v\n", logfile, err)
		log.SetOutput(os.Stdout)
		return
	}
	log.SetOutput(io.MultiWriter(os.Stdout, writer))
}

// ParseLevel falls back to info for unknown levels.
func ParseLevel(level string) log.Level {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

func newRotateWriter(logfile string) (*rotatelogs.RotateLogs, error) {
	if err := os.MkdirAll(filepath.Dir(logfile), os.ModePerm); err != nil {
		return nil, err
	}
	return rotatelogs.New(
		logfile+".%Y%m%d",
		rotatelogs.WithLinkName(logfile),
		rotatelogs.WithRotationTime(RotationTime),
		rotatelogs.WithMaxAge(MaxAge),
	)
}
