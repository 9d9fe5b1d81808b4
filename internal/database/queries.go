package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"network-quality/internal/models"
)

var _ models.Database = (*DB)(nil)

// SaveSnapshot replaces the stored snapshot
func (db *DB) SaveSnapshot(s models.Snapshot) error {
	query := `
        INSERT OR REPLACE INTO latest_snapshot (
            id, run_id, captured_at, duration_ms,
            network_name, network_name_error,
            download_mbps, download_error,
            upload_mbps, upload_error,
            latency_ms, latency_error,
            speedtest_server,
            jitter_ms, jitter_samples, jitter_error,
            packet_loss_percent, packet_loss_error,
            updated_at
        )
        VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
    `

	name, nameErr := stringColumns(s.NetworkName)
	down, downErr := floatColumns(s.DownloadMbps)
	up, upErr := floatColumns(s.UploadMbps)
	latency, latencyErr := floatColumns(s.LatencyMs)
	jitter, jitterErr := floatColumns(s.JitterMs)
	loss, lossErr := floatColumns(s.PacketLossPercent)

	_, err := db.Exec(query,
		s.RunID,
		s.CapturedAt.UTC(),
		s.Duration.Milliseconds(),
		name, nameErr,
		down, downErr,
		up, upErr,
		latency, latencyErr,
		s.SpeedTestServer,
		jitter, s.JitterSamples, jitterErr,
		loss, lossErr,
	)
	if err != nil {
		return fmt.Errorf("save snapshot failed: %w", err)
	}
	return nil
}

// LoadSnapshot returns the stored snapshot; ok is false when none was saved yet
func (db *DB) LoadSnapshot() (models.Snapshot, bool, error) {
	query := `
        SELECT
            run_id, captured_at, duration_ms,
            network_name, network_name_error,
            download_mbps, download_error,
            upload_mbps, upload_error,
            latency_ms, latency_error,
            speedtest_server,
            jitter_ms, jitter_samples, jitter_error,
            packet_loss_percent, packet_loss_error
        FROM latest_snapshot
        WHERE id = 1
    `

	var (
		s                               models.Snapshot
		durationMs                      int64
		name, nameErr, server           sql.NullString
		down, up, latency, jitter, loss sql.NullFloat64
		downErr, upErr, latencyErr      sql.NullString
		jitterErr, lossErr              sql.NullString
		jitterSamples                   sql.NullInt64
	)

	err := db.QueryRow(query).Scan(
		&s.RunID, &s.CapturedAt, &durationMs,
		&name, &nameErr,
		&down, &downErr,
		&up, &upErr,
		&latency, &latencyErr,
		&server,
		&jitter, &jitterSamples, &jitterErr,
		&loss, &lossErr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Snapshot{}, false, nil
	}
	if err != nil {
		return models.Snapshot{}, false, fmt.Errorf("load snapshot failed: %w", err)
	}

	s.Duration = time.Duration(durationMs) * time.Millisecond
	s.NetworkName = stringResult(name, nameErr)
	s.DownloadMbps = floatResult(down, downErr)
	s.UploadMbps = floatResult(up, upErr)
	s.LatencyMs = floatResult(latency, latencyErr)
	s.SpeedTestServer = server.String
	s.JitterMs = floatResult(jitter, jitterErr)
	s.JitterSamples = int(jitterSamples.Int64)
	s.PacketLossPercent = floatResult(loss, lossErr)

	return s, true, nil
}

// Failed results are stored as a NULL value with the reason in the error column

func floatColumns(r models.Result[float64]) (sql.NullFloat64, sql.NullString) {
	if r.Failed {
		return sql.NullFloat64{}, sql.NullString{String: r.Reason, Valid: true}
	}
	return sql.NullFloat64{Float64: r.Value, Valid: true}, sql.NullString{}
}

func stringColumns(r models.Result[string]) (sql.NullString, sql.NullString) {
	if r.Failed {
		return sql.NullString{}, sql.NullString{String: r.Reason, Valid: true}
	}
	return sql.NullString{String: r.Value, Valid: true}, sql.NullString{}
}

func floatResult(v sql.NullFloat64, errMsg sql.NullString) models.Result[float64] {
	if errMsg.Valid {
		return models.Fail[float64](errMsg.String)
	}
	return models.Ok(v.Float64)
}

func stringResult(v sql.NullString, errMsg sql.NullString) models.Result[string] {
	if errMsg.Valid {
		return models.Fail[string](errMsg.String)
	}
	return models.Ok(v.String)
}
