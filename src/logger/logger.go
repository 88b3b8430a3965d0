package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/rs/zerolog"
)

const timeFormat = "15:04:05"

var (
	once sync.Once
	log  zerolog.Logger
	file *os.File
)

// Init sets up the shared logger writing to stdout and, if logFile is not empty, to that file.
// Only the first call has any effect.
func Init(level zerolog.Level, logFile string) error {
	var err error
	once.Do(func() {
		err = configure(level, logFile)
	})
	return err
}

// GetLogger returns the shared logger, configuring a stdout-only one if Init was never called.
func GetLogger() *zerolog.Logger {
	once.Do(func() {
		_ = configure(zerolog.InfoLevel, "")
	})
	return &log
}

// Close flushes and closes the log file, if any.
func Close() error {
	if file == nil {
		return nil
	}
	return file.Close()
}

func configure(level zerolog.Level, logFile string) error {
	zerolog.CallerMarshalFunc = func(pc uintptr, path string, line int) string {
		return filepath.Base(path) + ":" + strconv.Itoa(line)
	}

	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: timeFormat}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			log = zerolog.New(out).Level(level).With().Timestamp().Caller().Logger()
			return fmt.Errorf("opening log file: %w", err)
		}
		file = f
		out = zerolog.MultiLevelWriter(out, zerolog.ConsoleWriter{Out: f, TimeFormat: timeFormat, NoColor: true})
	}

	log = zerolog.New(out).Level(level).With().Timestamp().Caller().Logger()
	return nil
}
