package probe

import (
	"log/slog"
	"runtime"
	"time"
)

// Config holds probe parameters
type Config struct {
	Target          string   // echo target for jitter and packet loss
	IdentityCommand []string // command printing the current network name
	JitterCount     int
	LossCount       int
	EchoTimeout     time.Duration // per single echo request
	IdentityTimeout time.Duration
	LossTimeout     time.Duration // whole packet loss batch
}

// DefaultConfig returns the stock probe settings
func DefaultConfig() Config {
	return Config{
		Target:          "8.8.8.8",
		IdentityCommand: DefaultIdentityCommand(),
		JitterCount:     5,
		LossCount:       10,
		EchoTimeout:     2 * time.Second,
		IdentityTimeout: 2 * time.Second,
		LossTimeout:     10 * time.Second,
	}
}

// DefaultIdentityCommand returns the platform command that prints the associated network
func DefaultIdentityCommand() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"networksetup", "-getairportnetwork", "en0"}
	case "windows":
		return []string{"netsh", "wlan", "show", "interfaces"}
	default:
		return []string{"iwgetid", "-r"}
	}
}

// Prober implements models.Prober on top of system commands and a speed test client.
// It holds no state between calls.
type Prober struct {
	cfg    Config
	run    CommandFunc
	speed  SpeedTester
	logger *slog.Logger
}

// New creates a new Prober
func New(cfg Config, speed SpeedTester, logger *slog.Logger) *Prober {
	if logger == nil {
		logger = slog.Default()
	}
	return &Prober{
		cfg:    cfg,
		run:    runCommand,
		speed:  speed,
		logger: logger.With("component", "probe"),
	}
}
