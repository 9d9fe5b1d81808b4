package probe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/showwin/speedtest-go/speedtest"
)

// Speedtest is a SpeedTester backed by the speedtest.net server network
type Speedtest struct {
	client *speedtest.Speedtest
}

// NewSpeedtest creates a speedtest.net client
func NewSpeedtest() *Speedtest {
	return &Speedtest{client: speedtest.New()}
}

// BestServer fetches the server list and picks the closest server
func (s *Speedtest) BestServer(ctx context.Context) (SpeedServer, error) {
	servers, err := s.client.FetchServerListContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch server list: %w", err)
	}

	targets, err := servers.FindServer([]int{})
	if err != nil {
		return nil, fmt.Errorf("find server: %w", err)
	}
	if len(targets) == 0 {
		return nil, errors.New("no speed test servers available")
	}

	return &speedtestServer{server: targets[0]}, nil
}

type speedtestServer struct {
	server *speedtest.Server
}

func (s *speedtestServer) Name() string {
	return fmt.Sprintf("%s (%s)", s.server.Sponsor, s.server.Name)
}

func (s *speedtestServer) Ping(ctx context.Context) (time.Duration, error) {
	if err := s.server.PingTestContext(ctx, nil); err != nil {
		return 0, err
	}
	return s.server.Latency, nil
}

func (s *speedtestServer) Download(ctx context.Context) (float64, error) {
	if err := s.server.DownloadTestContext(ctx); err != nil {
		return 0, err
	}
	return transferRate("download", float64(s.server.DLSpeed))
}

func (s *speedtestServer) Upload(ctx context.Context) (float64, error) {
	if err := s.server.UploadTestContext(ctx); err != nil {
		return 0, err
	}
	return transferRate("upload", float64(s.server.ULSpeed))
}

// transferRate rejects the negative rate the client records when every
// transfer request failed
func transferRate(direction string, bps float64) (float64, error) {
	if bps < 0 {
		return 0, fmt.Errorf("%s: no transfer completed", direction)
	}
	return bps, nil
}
