package alerts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/model"
)

// PostgresStore persists alerts and matches in PostgreSQL.
//
// job_alert_matches carries a UNIQUE (alert_id, job_id) constraint; the
// insert-if-absent dedup relies on it, so concurrent evaluators of the same
// alert stay correct without explicit locking.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore returns a Store backed by the given pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const alertColumns = `id, user_id, name, criteria, frequency, status,
	last_sent, next_scheduled, created_at, updated_at`

func (s *PostgresStore) CreateAlert(ctx context.Context, alert model.JobAlert) error {
	criteria, err := json.Marshal(alert.Criteria)
	if err != nil {
		return fmt.Errorf("marshal criteria: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO job_alerts (id, user_id, name, criteria, frequency, status,
		                         last_sent, next_scheduled, created_at, updated_at)
		 VALUES ($1, $2, $3, $4::jsonb, $5, $6, $7, $8, $9, $10)`,
		alert.ID, alert.UserID, alert.Name, string(criteria),
		string(alert.Frequency), string(alert.Status),
		alert.LastSent, alert.NextScheduled, alert.CreatedAt, alert.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("createAlert: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetAlert(ctx context.Context, alertID string) (model.JobAlert, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+alertColumns+` FROM job_alerts WHERE id = $1`, alertID)
	alert, err := scanAlert(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.JobAlert{}, ErrNotFound
	}
	if err != nil {
		return model.JobAlert{}, fmt.Errorf("getAlert: %w", err)
	}
	return alert, nil
}

func (s *PostgresStore) UpdateAlert(ctx context.Context, alert model.JobAlert) error {
	criteria, err := json.Marshal(alert.Criteria)
	if err != nil {
		return fmt.Errorf("marshal criteria: %w", err)
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE job_alerts
		 SET name = $1, criteria = $2::jsonb, frequency = $3, status = $4,
		     last_sent = $5, next_scheduled = $6, updated_at = $7
		 WHERE id = $8`,
		alert.Name, string(criteria), string(alert.Frequency), string(alert.Status),
		alert.LastSent, alert.NextScheduled, alert.UpdatedAt, alert.ID,
	)
	if err != nil {
		return fmt.Errorf("updateAlert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListAlertsByUser(ctx context.Context, userID string) ([]model.JobAlert, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+alertColumns+` FROM job_alerts
		 WHERE user_id = $1
		 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("listAlertsByUser query: %w", err)
	}
	defer rows.Close()
	return collectAlerts(rows)
}

func (s *PostgresStore) ListActiveAlerts(ctx context.Context) ([]model.JobAlert, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+alertColumns+` FROM job_alerts
		 WHERE status = 'active'
		 ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listActiveAlerts query: %w", err)
	}
	defer rows.Close()
	return collectAlerts(rows)
}

func (s *PostgresStore) UpdateSchedule(ctx context.Context, alertID string, lastSent time.Time, nextScheduled *time.Time) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE job_alerts
		 SET last_sent = $1, next_scheduled = $2, updated_at = NOW()
		 WHERE id = $3`,
		lastSent, nextScheduled, alertID,
	)
	if err != nil {
		return fmt.Errorf("updateSchedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) InsertMatch(ctx context.Context, match model.JobAlertMatch) error {
	reasons, err := json.Marshal(match.MatchReasons)
	if err != nil {
		return fmt.Errorf("marshal matchReasons: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO job_alert_matches (id, alert_id, job_id, match_score, match_reasons, status, created_at)
		 VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7)`,
		match.ID, match.AlertID, match.JobID, match.MatchScore,
		string(reasons), string(match.Status), match.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
		return ErrDuplicateMatch
	}
	if err != nil {
		return fmt.Errorf("insertMatch: %w", err)
	}
	return nil
}

func (s *PostgresStore) InsertMatchIfAbsent(ctx context.Context, match model.JobAlertMatch) (bool, error) {
	reasons, err := json.Marshal(match.MatchReasons)
	if err != nil {
		return false, fmt.Errorf("marshal matchReasons: %w", err)
	}
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO job_alert_matches (id, alert_id, job_id, match_score, match_reasons, status, created_at)
		 VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7)
		 ON CONFLICT (alert_id, job_id) DO NOTHING`,
		match.ID, match.AlertID, match.JobID, match.MatchScore,
		string(reasons), string(match.Status), match.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insertMatchIfAbsent: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PostgresStore) ListMatchesByAlert(ctx context.Context, alertID string) ([]model.JobAlertMatch, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, alert_id, job_id, match_score, match_reasons, status, created_at
		 FROM job_alert_matches
		 WHERE alert_id = $1
		 ORDER BY created_at DESC, id`, alertID)
	if err != nil {
		return nil, fmt.Errorf("listMatchesByAlert query: %w", err)
	}
	defer rows.Close()

	matches := make([]model.JobAlertMatch, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("listMatchesByAlert scan: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (s *PostgresStore) GetMatch(ctx context.Context, matchID string) (model.JobAlertMatch, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, alert_id, job_id, match_score, match_reasons, status, created_at
		 FROM job_alert_matches WHERE id = $1`, matchID)
	m, err := scanMatch(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.JobAlertMatch{}, ErrNotFound
	}
	if err != nil {
		return model.JobAlertMatch{}, fmt.Errorf("getMatch: %w", err)
	}
	return m, nil
}

func (s *PostgresStore) UpdateMatchStatus(ctx context.Context, matchID string, status model.MatchStatus) (model.JobAlertMatch, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE job_alert_matches
		 SET status = $1
		 WHERE id = $2
		 RETURNING id, alert_id, job_id, match_score, match_reasons, status, created_at`,
		string(status), matchID,
	)
	m, err := scanMatch(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.JobAlertMatch{}, ErrNotFound
	}
	if err != nil {
		return model.JobAlertMatch{}, fmt.Errorf("updateMatchStatus: %w", err)
	}
	return m, nil
}

// ─── Row scanning ────────────────────────────────────────────────────────────

func scanAlert(row pgx.Row) (model.JobAlert, error) {
	var (
		a            model.JobAlert
		criteriaJSON []byte
		frequency    string
		status       string
	)
	err := row.Scan(&a.ID, &a.UserID, &a.Name, &criteriaJSON, &frequency, &status,
		&a.LastSent, &a.NextScheduled, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return model.JobAlert{}, err
	}
	if err := json.Unmarshal(criteriaJSON, &a.Criteria); err != nil {
		return model.JobAlert{}, fmt.Errorf("unmarshal criteria: %w", err)
	}
	a.Frequency = model.Frequency(frequency)
	a.Status = model.AlertStatus(status)
	return a, nil
}

func collectAlerts(rows pgx.Rows) ([]model.JobAlert, error) {
	alerts := make([]model.JobAlert, 0)
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func scanMatch(row pgx.Row) (model.JobAlertMatch, error) {
	var (
		m           model.JobAlertMatch
		reasonsJSON []byte
		status      string
	)
	err := row.Scan(&m.ID, &m.AlertID, &m.JobID, &m.MatchScore, &reasonsJSON, &status, &m.CreatedAt)
	if err != nil {
		return model.JobAlertMatch{}, err
	}
	if err := json.Unmarshal(reasonsJSON, &m.MatchReasons); err != nil {
		return model.JobAlertMatch{}, fmt.Errorf("unmarshal matchReasons: %w", err)
	}
	m.Status = model.MatchStatus(status)
	return m, nil
}
