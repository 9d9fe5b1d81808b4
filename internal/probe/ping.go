package probe

import (
	"fmt"
	"regexp"
	"runtime"
	"strconv"
	"time"
)

var (
	// Linux/Mac: "time=XX.X ms"
	// Windows: "time=XXms" or "time<1ms"
	rttPatterns = []*regexp.Regexp{
		regexp.MustCompile(`time[=<]([0-9.]+)\s*ms`),
		regexp.MustCompile(`(?:rtt|round-trip) min/avg/max\S* = [0-9.]+/([0-9.]+)/`),
	}

	// Linux/Mac: "10 packets transmitted, 8 received, 20% packet loss"
	// Windows: "Lost = 2 (20% loss)"
	lossPattern = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)%\s*(?:packet\s+)?loss`)
)

// pingArgs builds the platform-specific ping arguments. wait bounds each
// reply and deadline the whole batch; zero leaves either at the system default.
// With a deadline ping stops on its own and still prints its summary.
func pingArgs(count int, wait, deadline time.Duration, target string) []string {
	n := strconv.Itoa(count)
	switch runtime.GOOS {
	case "windows":
		// no batch deadline flag, so spread it over the replies
		if wait <= 0 && deadline > 0 {
			wait = deadline / time.Duration(count)
		}
		args := []string{"-n", n}
		if wait > 0 {
			args = append(args, "-w", strconv.Itoa(int(wait.Milliseconds())))
		}
		return append(args, target)
	case "darwin":
		args := []string{"-c", n}
		if wait > 0 {
			args = append(args, "-W", strconv.Itoa(int(wait.Milliseconds())))
		}
		if deadline > 0 {
			args = append(args, "-t", wholeSeconds(deadline))
		}
		return append(args, target)
	default:
		args := []string{"-c", n}
		if wait > 0 {
			args = append(args, "-W", wholeSeconds(wait))
		}
		if deadline > 0 {
			args = append(args, "-w", wholeSeconds(deadline))
		}
		return append(args, target)
	}
}

// wholeSeconds rounds d down to whole seconds, at least 1
func wholeSeconds(d time.Duration) string {
	return strconv.Itoa(max(int(d.Seconds()), 1))
}

// parseRTT parses the round-trip time in milliseconds from ping output
func parseRTT(output string) (float64, bool) {
	for _, re := range rttPatterns {
		matches := re.FindStringSubmatch(output)
		if len(matches) > 1 {
			if rtt, err := strconv.ParseFloat(matches[1], 64); err == nil {
				return rtt, true
			}
		}
	}
	return 0, false
}

// parsePacketLoss parses the loss percentage from a ping summary
func parsePacketLoss(output string) (float64, error) {
	matches := lossPattern.FindStringSubmatch(output)
	if len(matches) < 2 {
		return 0, fmt.Errorf("%w: no packet loss summary in ping output", ErrParse)
	}
	loss, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return loss, nil
}
