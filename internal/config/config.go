package config

import (
	"fmt"
	"time"

	"network-quality/internal/probe"
	"network-quality/internal/runner"
)

// Config holds all configuration for the network quality service
type Config struct {
	Port         int
	DatabasePath string        // empty disables snapshot persistence
	Interval     time.Duration // 0 refreshes on demand only
	Workers      int

	Target          string
	IdentityCommand []string
	JitterCount     int
	LossCount       int

	IdentityTimeout   time.Duration
	EchoTimeout       time.Duration
	LossTimeout       time.Duration
	ThroughputTimeout time.Duration

	LogLevel  string
	LogFormat string
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	if c.Interval < 0 {
		return fmt.Errorf("interval cannot be negative")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}
	if c.Target == "" {
		return fmt.Errorf("echo target cannot be empty")
	}
	if len(c.IdentityCommand) == 0 {
		return fmt.Errorf("identity command cannot be empty")
	}
	if c.JitterCount <= 0 || c.LossCount <= 0 {
		return fmt.Errorf("echo counts must be positive")
	}
	if c.IdentityTimeout <= 0 || c.EchoTimeout <= 0 || c.LossTimeout <= 0 || c.ThroughputTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level must be one of debug, info, warn, error")
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("log format must be text or json")
	}
	return nil
}

// ProbeConfig returns the settings for the probes themselves
func (c *Config) ProbeConfig() probe.Config {
	return probe.Config{
		Target:          c.Target,
		IdentityCommand: c.IdentityCommand,
		JitterCount:     c.JitterCount,
		LossCount:       c.LossCount,
		EchoTimeout:     c.EchoTimeout,
		IdentityTimeout: c.IdentityTimeout,
		LossTimeout:     c.LossTimeout,
	}
}

// taskGrace is added to probe-level bounds so the probe's own timeout fires first
const taskGrace = time.Second

// RunnerTimeouts returns the per-task bounds enforced by the runner
func (c *Config) RunnerTimeouts() runner.Timeouts {
	return runner.Timeouts{
		Identity:   c.IdentityTimeout + taskGrace,
		Throughput: c.ThroughputTimeout,
		Jitter:     time.Duration(c.JitterCount)*c.EchoTimeout + taskGrace,
		// ping stops at LossTimeout and is killed one grace period later
		PacketLoss: c.LossTimeout + 2*taskGrace,
	}
}
