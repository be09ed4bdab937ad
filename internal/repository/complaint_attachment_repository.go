package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// ComplaintAttachmentRepository stores attachment metadata for complaints.
type ComplaintAttachmentRepository interface {
	Create(ctx context.Context, attachment *domain.ComplaintAttachment) error
	ListByComplaint(ctx context.Context, complaintID int64) ([]domain.ComplaintAttachment, error)
}

type complaintAttachmentRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintAttachmentRepository builds repository.
func NewComplaintAttachmentRepository(pool *pgxpool.Pool) ComplaintAttachmentRepository {
	return &complaintAttachmentRepository{pool: pool}
}

func (r *complaintAttachmentRepository) Create(ctx context.Context, attachment *domain.ComplaintAttachment) error {
	const query = `
        INSERT INTO complaint_attachments (complaint_id, filename, file_path, file_size, mime_type)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		attachment.ComplaintID,
		attachment.Filename,
		attachment.FilePath,
		attachment.FileSize,
		attachment.MimeType,
	).Scan(&attachment.ID, &attachment.CreatedAt)
}

func (r *complaintAttachmentRepository) ListByComplaint(ctx context.Context, complaintID int64) ([]domain.ComplaintAttachment, error) {
	const query = `
        SELECT id, complaint_id, filename, file_path, file_size, mime_type, created_at
        FROM complaint_attachments WHERE complaint_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, complaintID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ComplaintAttachment
	for rows.Next() {
		var attachment domain.ComplaintAttachment
		if err := rows.Scan(
			&attachment.ID,
			&attachment.ComplaintID,
			&attachment.Filename,
			&attachment.FilePath,
			&attachment.FileSize,
			&attachment.MimeType,
			&attachment.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, attachment)
	}
	return result, rows.Err()
}
