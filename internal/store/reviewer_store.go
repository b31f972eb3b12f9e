package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nhle/safetyflash/internal/model"
)

// GetReviewers returns the supervisors assigned to a flash, oldest first.
func (s *SQLiteStore) GetReviewers(ctx context.Context, flashID int64) ([]model.Reviewer, error) {
	var reviewers []model.Reviewer
	err := s.db.SelectContext(ctx, &reviewers, `
		SELECT fs.flash_id, fs.user_id, fs.assigned_at,
			u.first_name, u.last_name, u.email
		FROM sf_flash_supervisors fs
		INNER JOIN sf_users u ON u.id = fs.user_id
		WHERE fs.flash_id = ?
		ORDER BY fs.assigned_at ASC, u.last_name ASC`, flashID)
	if err != nil {
		return nil, fmt.Errorf("querying reviewers for flash %d: %w", flashID, err)
	}
	return reviewers, nil
}

// CreateUser inserts a user and returns its new ID.
func (s *SQLiteStore) CreateUser(ctx context.Context, user model.User) (int64, error) {
	if strings.TrimSpace(user.Email) == "" {
		return 0, fmt.Errorf("user email must not be empty")
	}
	user.CreatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO sf_users (first_name, last_name, email, created_at)
		VALUES (?, ?, ?, ?)`,
		user.FirstName, user.LastName, user.Email, user.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("creating user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading user id: %w", err)
	}
	return id, nil
}

// AssignReviewer records userID as a supervisor reviewer of flashID.
func (s *SQLiteStore) AssignReviewer(ctx context.Context, flashID, userID int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO sf_flash_supervisors (flash_id, user_id, assigned_at)
		VALUES (?, ?, ?)`,
		flashID, userID, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("assigning reviewer %d to flash %d: %w", userID, flashID, err)
	}
	return nil
}
