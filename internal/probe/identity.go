package probe

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ssidLine         = regexp.MustCompile(`(?m)^\s*SSID\s*:\s*(.+?)\s*$`)
	errNotAssociated = errors.New("not associated with a network")
)

// Identify returns the name of the currently associated network
func (p *Prober) Identify(ctx context.Context) (string, error) {
	if len(p.cfg.IdentityCommand) == 0 {
		return "", fmt.Errorf("%w: no identity command configured", ErrToolUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.IdentityTimeout)
	defer cancel()

	name, args := p.cfg.IdentityCommand[0], p.cfg.IdentityCommand[1:]
	output, err := p.run(ctx, name, args...)
	if err != nil {
		return "", fmt.Errorf("network identity lookup: %w", err)
	}

	return parseIdentity(string(output))
}

// parseIdentity extracts the network name from identity command output.
// Handles bare names (iwgetid -r), "Current Wi-Fi Network: X" (macOS)
// and netsh "SSID : X" blocks (Windows).
func parseIdentity(output string) (string, error) {
	output = strings.TrimSpace(output)

	if output == "" || strings.Contains(output, "not associated") {
		return "", errNotAssociated
	}

	if m := ssidLine.FindStringSubmatch(output); len(m) > 1 {
		return m[1], nil
	}

	if i := strings.Index(output, "Network: "); i >= 0 && !strings.Contains(output, "\n") {
		return strings.TrimSpace(output[i+len("Network: "):]), nil
	}

	if strings.Contains(output, "\n") {
		return "", fmt.Errorf("%w: %q", ErrParse, firstLine(output))
	}

	return output, nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
