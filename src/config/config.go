package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	DefaultTopFloor   = 3
	DefaultLoopPeriod = 500 * time.Millisecond
	SensorPollRate    = 25 * time.Millisecond
	DefaultHTTPAddr   = "localhost:9090"
	DefaultElevioAddr = "localhost:15657"
	DefaultEnvFile    = ".env"
)

const (
	keyTopFloor   = "DUMBWAITER_TOP_FLOOR"
	keyLoopPeriod = "DUMBWAITER_LOOP_PERIOD"
	keyPollRate   = "DUMBWAITER_POLL_RATE"
	keyHTTPAddr   = "DUMBWAITER_HTTP_ADDR"
	keyElevioAddr = "DUMBWAITER_ELEVIO_ADDR"
	keyLogLevel   = "DUMBWAITER_LOG_LEVEL"
	keyLogFile    = "DUMBWAITER_LOG_FILE"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	TopFloor   int
	LoopPeriod time.Duration
	PollRate   time.Duration
	HTTPAddr   string
	ElevioAddr string
	LogLevel   zerolog.Level
	LogFile    string // empty means stdout only
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TopFloor:   DefaultTopFloor,
		LoopPeriod: DefaultLoopPeriod,
		PollRate:   SensorPollRate,
		HTTPAddr:   DefaultHTTPAddr,
		ElevioAddr: DefaultElevioAddr,
		LogLevel:   zerolog.InfoLevel,
	}
}

// Load reads an env file on top of the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	envFile, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := cfg.apply(envFile); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (cfg *Config) apply(env map[string]string) error {
	if v, ok := env[keyTopFloor]; ok {
		topFloor, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, keyTopFloor, v, err)
		}
		cfg.TopFloor = topFloor
	}
	if v, ok := env[keyLoopPeriod]; ok {
		period, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, keyLoopPeriod, v, err)
		}
		cfg.LoopPeriod = period
	}
	if v, ok := env[keyPollRate]; ok {
		rate, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, keyPollRate, v, err)
		}
		cfg.PollRate = rate
	}
	if v, ok := env[keyHTTPAddr]; ok {
		cfg.HTTPAddr = v
	}
	if v, ok := env[keyElevioAddr]; ok {
		cfg.ElevioAddr = v
	}
	if v, ok := env[keyLogLevel]; ok {
		level, err := zerolog.ParseLevel(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, keyLogLevel, v, err)
		}
		cfg.LogLevel = level
	}
	if v, ok := env[keyLogFile]; ok {
		cfg.LogFile = v
	}
	return nil
}

// Validate checks the ranges the rest of the program relies on.
func (cfg Config) Validate() error {
	if cfg.TopFloor < 0 {
		return fmt.Errorf("%w: top floor %d is negative", ErrInvalid, cfg.TopFloor)
	}
	if cfg.LoopPeriod <= 0 {
		return fmt.Errorf("%w: loop period %s must be positive", ErrInvalid, cfg.LoopPeriod)
	}
	if cfg.PollRate <= 0 {
		return fmt.Errorf("%w: poll rate %s must be positive", ErrInvalid, cfg.PollRate)
	}
	return nil
}
