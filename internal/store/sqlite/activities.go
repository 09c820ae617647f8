package sqlite

import (
	"context"
	"fmt"

	"github.com/snapsense/snapsense-server/internal/domain"
)

// DefaultKeepPerProfile is how many live events each profile retains.
const DefaultKeepPerProfile = 15

// AppendActivity records ev for its profile and prunes everything but the
// newest keep events of that profile. keep <= 0 disables pruning.
func (s *Store) AppendActivity(ctx context.Context, ev domain.ActivityEvent, keep int) error {
	if ev.ProfileID == "" {
		return fmt.Errorf("append activity %s: missing profile id", ev.ID)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx, `
		INSERT INTO activity_events (id, profile_id, message, module, occurred_at, accuracy, exp)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			message = excluded.message,
			module = excluded.module,
			occurred_at = excluded.occurred_at,
			accuracy = excluded.accuracy,
			exp = excluded.exp`,
		ev.ID, ev.ProfileID, ev.Message, ev.Module, formatTime(ev.Timestamp), ev.Accuracy, ev.Exp,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}

	if keep > 0 {
		_, err = tx.ExecContext(ctx, `
			DELETE FROM activity_events
			WHERE profile_id = ? AND id NOT IN (
				SELECT id FROM activity_events
				WHERE profile_id = ?
				ORDER BY occurred_at DESC, id DESC
				LIMIT ?
			)`, ev.ProfileID, ev.ProfileID, keep)
		if err != nil {
			return fmt.Errorf("prune activity: %w", err)
		}
	}

	return tx.Commit()
}

// RecentActivity returns up to limit events for a profile, newest first.
func (s *Store) RecentActivity(ctx context.Context, profileID string, limit int) ([]domain.ActivityEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, profile_id, message, module, occurred_at, accuracy, exp
		FROM activity_events
		WHERE profile_id = ?
		ORDER BY occurred_at DESC, id DESC
		LIMIT ?`, profileID, limit)
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}
	defer rows.Close()

	var events []domain.ActivityEvent
	for rows.Next() {
		var (
			ev         domain.ActivityEvent
			occurredAt string
		)
		if err := rows.Scan(&ev.ID, &ev.ProfileID, &ev.Message, &ev.Module, &occurredAt, &ev.Accuracy, &ev.Exp); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		if ev.Timestamp, err = parseTime(occurredAt); err != nil {
			return nil, fmt.Errorf("parse activity time: %w", err)
		}
		ev.Live = true
		events = append(events, ev)
	}
	return events, rows.Err()
}

// DeleteProfileActivity drops the journal of a removed profile.
func (s *Store) DeleteProfileActivity(ctx context.Context, profileID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM activity_events WHERE profile_id = ?`, profileID)
	if err != nil {
		return 0, fmt.Errorf("delete activity: %w", err)
	}
	return res.RowsAffected()
}
