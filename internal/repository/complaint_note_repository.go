package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// ComplaintNoteRepository stores notes attached to complaints.
type ComplaintNoteRepository interface {
	Create(ctx context.Context, note *domain.ComplaintNote) error
	ListByComplaint(ctx context.Context, complaintID int64) ([]domain.ComplaintNote, error)
}

type complaintNoteRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintNoteRepository builds repository.
func NewComplaintNoteRepository(pool *pgxpool.Pool) ComplaintNoteRepository {
	return &complaintNoteRepository{pool: pool}
}

func (r *complaintNoteRepository) Create(ctx context.Context, note *domain.ComplaintNote) error {
	const query = `
        INSERT INTO complaint_notes (complaint_id, user_id, note, is_internal)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		note.ComplaintID,
		note.UserID,
		note.Note,
		note.IsInternal,
	).Scan(&note.ID, &note.CreatedAt)
}

func (r *complaintNoteRepository) ListByComplaint(ctx context.Context, complaintID int64) ([]domain.ComplaintNote, error) {
	const query = `
        SELECT id, complaint_id, user_id, note, is_internal, created_at
        FROM complaint_notes WHERE complaint_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, complaintID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ComplaintNote
	for rows.Next() {
		var note domain.ComplaintNote
		if err := rows.Scan(&note.ID, &note.ComplaintID, &note.UserID, &note.Note, &note.IsInternal, &note.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, note)
	}
	return result, rows.Err()
}
