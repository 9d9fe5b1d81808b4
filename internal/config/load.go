package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"network-quality/internal/probe"
	"network-quality/internal/runner"
)

// EnvPrefix prefixes environment overrides, e.g. NETQUALITY_PORT
const EnvPrefix = "NETQUALITY"

// RegisterFlags adds the service flags to fs
func RegisterFlags(fs *pflag.FlagSet) {
	def := probe.DefaultConfig()

	fs.Int("port", 8080, "Web server port")
	fs.String("db", "network_quality.db", "Database path for the latest snapshot (empty disables)")
	fs.Duration("interval", 0, "Background refresh interval (0 = refresh on demand only)")
	fs.Int("workers", runner.DefaultWorkers, "Probe worker pool size")
	fs.String("target", def.Target, "Echo target for jitter and packet loss")
	fs.String("identity-command", strings.Join(def.IdentityCommand, " "), "Command printing the current network name")
	fs.Int("jitter-count", def.JitterCount, "Echo requests used for jitter")
	fs.Int("loss-count", def.LossCount, "Echo requests used for packet loss")
	fs.Duration("identity-timeout", def.IdentityTimeout, "Network identity lookup timeout")
	fs.Duration("echo-timeout", def.EchoTimeout, "Timeout per jitter echo request")
	fs.Duration("loss-timeout", def.LossTimeout, "Timeout for the packet loss batch")
	fs.Duration("throughput-timeout", 60*time.Second, "Timeout for the speed test")
	fs.String("log-level", "info", "Log level: debug, info, warn, error")
	fs.String("log-format", "text", "Log format: text or json")
}

// Load builds a Config from flags, NETQUALITY_* environment variables and an
// optional YAML config file. Explicit flags win over env, env over the file.
func Load(v *viper.Viper, fs *pflag.FlagSet, configFile string) (Config, error) {
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	return Config{
		Port:              v.GetInt("port"),
		DatabasePath:      v.GetString("db"),
		Interval:          v.GetDuration("interval"),
		Workers:           v.GetInt("workers"),
		Target:            v.GetString("target"),
		IdentityCommand:   strings.Fields(v.GetString("identity-command")),
		JitterCount:       v.GetInt("jitter-count"),
		LossCount:         v.GetInt("loss-count"),
		IdentityTimeout:   v.GetDuration("identity-timeout"),
		EchoTimeout:       v.GetDuration("echo-timeout"),
		LossTimeout:       v.GetDuration("loss-timeout"),
		ThroughputTimeout: v.GetDuration("throughput-timeout"),
		LogLevel:          strings.ToLower(v.GetString("log-level")),
		LogFormat:         strings.ToLower(v.GetString("log-format")),
	}, nil
}
