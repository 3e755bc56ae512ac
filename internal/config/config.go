// SPDX-License-Identifier: MIT

// Package config loads the numlab service configuration from YAML with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/numlab/iterative"
)

// Environment variables that override file values.
const (
	EnvPort     = "NUMLAB_PORT"
	EnvPortAlt  = "PORT"
	EnvLogLevel = "NUMLAB_LOG_LEVEL"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("config: invalid value")

// Config is the root configuration document.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Solver SolverConfig `yaml:"solver"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig controls the HTTP listener and request limits.
type ServerConfig struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	RateLimit      float64       `yaml:"rate_limit"` // requests per second, 0 disables
	RateBurst      int           `yaml:"rate_burst"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes"`
}

// SolverConfig holds defaults for iterative requests.
type SolverConfig struct {
	Tolerance        float64 `yaml:"tolerance"`
	MaxIterations    int     `yaml:"max_iterations"`
	IterationCeiling int     `yaml:"iteration_ceiling"` // hard cap on a request's max_iterations
	TraceSweeps      int     `yaml:"trace_sweeps"`      // sweeps kept in history and steps; 0 keeps all
}

// LogConfig selects the zerolog level and output format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           5000,
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   15 * time.Second,
			IdleTimeout:    60 * time.Second,
			RequestTimeout: 10 * time.Second,
			RateLimit:      50,
			RateBurst:      100,
			MaxBodyBytes:   1 << 20,
		},
		Solver: SolverConfig{
			Tolerance:        iterative.DefaultTolerance,
			MaxIterations:    iterative.DefaultMaxIterations,
			IterationCeiling: 100000,
			TraceSweeps:      200,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults (an empty path skips the file), applies
// environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err = yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// applyEnv overrides port and log level. NUMLAB_PORT wins over PORT.
func (c *Config) applyEnv(getenv func(string) string) error {
	for _, key := range []string{EnvPortAlt, EnvPort} {
		v := getenv(key)
		if v == "" {
			continue
		}
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalid, key, v)
		}
		c.Server.Port = p
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}

	return nil
}

// Validate checks ranges that would otherwise fail at request time.
func (c Config) Validate() error {
	switch {
	case c.Server.Port < 0 || c.Server.Port > 65535:
		return fmt.Errorf("%w: server.port %d", ErrInvalid, c.Server.Port)
	case c.Server.RateLimit < 0:
		return fmt.Errorf("%w: server.rate_limit %g", ErrInvalid, c.Server.RateLimit)
	case c.Server.RateLimit > 0 && c.Server.RateBurst < 1:
		return fmt.Errorf("%w: server.rate_burst %d", ErrInvalid, c.Server.RateBurst)
	case !(c.Solver.Tolerance > 0):
		return fmt.Errorf("%w: solver.tolerance %g", ErrInvalid, c.Solver.Tolerance)
	case c.Solver.MaxIterations < 1:
		return fmt.Errorf("%w: solver.max_iterations %d", ErrInvalid, c.Solver.MaxIterations)
	case c.Solver.IterationCeiling < c.Solver.MaxIterations:
		return fmt.Errorf("%w: solver.iteration_ceiling %d below max_iterations", ErrInvalid, c.Solver.IterationCeiling)
	case c.Solver.TraceSweeps < 0:
		return fmt.Errorf("%w: solver.trace_sweeps %d", ErrInvalid, c.Solver.TraceSweeps)
	}

	return nil
}

// Addr returns host:port for the listener.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
