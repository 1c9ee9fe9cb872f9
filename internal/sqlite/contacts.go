package sqlite

import (
	"context"
	"fmt"
	"time"
)

// Submission is one contact form entry, kept even after the mail relay
// accepted it so nothing is lost if the relay drops the message.
type Submission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactRepository persists contact form submissions
type ContactRepository struct {
	db *DB
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(db *DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Insert records a submission
func (r *ContactRepository) Insert(ctx context.Context, s *Submission) error {
	query := `
		INSERT INTO contact_submissions (id, name, email, subject, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Name,
		s.Email,
		s.Subject,
		s.Message,
		s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}
	return nil
}

// List returns submissions, newest first
func (r *ContactRepository) List(ctx context.Context) ([]Submission, error) {
	query := `
		SELECT id, name, email, subject, message, created_at
		FROM contact_submissions
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var subs []Submission
	for rows.Next() {
		var s Submission
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Subject, &s.Message, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}
