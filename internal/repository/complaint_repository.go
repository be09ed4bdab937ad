package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/visibility"
)

// ComplaintFilter captures list query parameters on top of the caller's
// visibility scope.
type ComplaintFilter struct {
	Scope    visibility.Scope
	Status   *domain.ComplaintStatus
	Severity *domain.ComplaintSeverity
	TeamID   *int64
	Limit    int
	Offset   int
}

// DashboardStats aggregates complaint counts under a visibility scope.
type DashboardStats struct {
	Total       int64 `json:"total_complaints"`
	Open        int64 `json:"open_complaints"`
	InProcess   int64 `json:"inprocess_complaints"`
	Pending     int64 `json:"pending_complaints"`
	Closed      int64 `json:"closed_complaints"`
	SLABreached int64 `json:"sla_breached"`
}

// ComplaintRepository encapsulates complaint persistence.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	Update(ctx context.Context, complaint *domain.Complaint) error
	GetByID(ctx context.Context, id int64) (*domain.Complaint, error)
	ListWithFilter(ctx context.Context, filter ComplaintFilter) ([]domain.Complaint, error)
	Stats(ctx context.Context, scope visibility.Scope) (*DashboardStats, error)
}

type complaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository instantiates repository.
func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

const complaintColumns = `id, complaint_number, product, subproduct, issue, subissue, description,
               severity, status, customer_id, assigned_team_id, assigned_to_id,
               sla_hours, sla_breach, resolution_time, created_at, updated_at`

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        INSERT INTO complaints (complaint_number, product, subproduct, issue, subissue, description,
            severity, status, customer_id, assigned_team_id, assigned_to_id, sla_hours)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, sla_breach, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		complaint.ComplaintNumber,
		complaint.Product,
		complaint.Subproduct,
		complaint.Issue,
		complaint.Subissue,
		complaint.Description,
		complaint.Severity,
		complaint.Status,
		complaint.CustomerID,
		complaint.AssignedTeamID,
		complaint.AssignedToID,
		complaint.SLAHours,
	).Scan(&complaint.ID, &complaint.SLABreach, &complaint.CreatedAt, &complaint.UpdatedAt)
}

func (r *complaintRepository) Update(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        UPDATE complaints SET product=$1, subproduct=$2, issue=$3, subissue=$4, description=$5,
            severity=$6, status=$7, assigned_team_id=$8, assigned_to_id=$9, sla_breach=$10,
            resolution_time=$11, updated_at=NOW()
        WHERE id=$12`
	cmd, err := r.pool.Exec(ctx, query,
		complaint.Product,
		complaint.Subproduct,
		complaint.Issue,
		complaint.Subissue,
		complaint.Description,
		complaint.Severity,
		complaint.Status,
		complaint.AssignedTeamID,
		complaint.AssignedToID,
		complaint.SLABreach,
		complaint.ResolutionTime,
		complaint.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *complaintRepository) GetByID(ctx context.Context, id int64) (*domain.Complaint, error) {
	query := fmt.Sprintf(`SELECT %s FROM complaints WHERE id=$1`, complaintColumns)
	var complaint domain.Complaint
	if err := r.pool.QueryRow(ctx, query, id).Scan(complaintFields(&complaint)...); err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (r *complaintRepository) ListWithFilter(ctx context.Context, filter ComplaintFilter) ([]domain.Complaint, error) {
	clauses := []string{"1=1"}
	args := []any{}
	clauses, args = appendScopeClauses(filter.Scope, clauses, args)

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Severity != nil {
		args = append(args, *filter.Severity)
		clauses = append(clauses, fmt.Sprintf("severity=$%d", len(args)))
	}
	if filter.TeamID != nil {
		args = append(args, *filter.TeamID)
		clauses = append(clauses, fmt.Sprintf("assigned_team_id=$%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM complaints WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		complaintColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

func (r *complaintRepository) Stats(ctx context.Context, scope visibility.Scope) (*DashboardStats, error) {
	clauses := []string{"1=1"}
	args := []any{}
	clauses, args = appendScopeClauses(scope, clauses, args)

	query := fmt.Sprintf(`
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status='open'),
               COUNT(*) FILTER (WHERE status='inprocess'),
               COUNT(*) FILTER (WHERE status='pending'),
               COUNT(*) FILTER (WHERE status='closed'),
               COUNT(*) FILTER (WHERE sla_breach)
        FROM complaints WHERE %s`, strings.Join(clauses, " AND "))

	var stats DashboardStats
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&stats.Total,
		&stats.Open,
		&stats.InProcess,
		&stats.Pending,
		&stats.Closed,
		&stats.SLABreached,
	); err != nil {
		return nil, err
	}
	return &stats, nil
}

// appendScopeClauses translates a visibility scope into SQL predicates.
func appendScopeClauses(scope visibility.Scope, clauses []string, args []any) ([]string, []any) {
	switch {
	case scope.None:
		clauses = append(clauses, "1=0")
	case scope.Unrestricted:
	case scope.TeamID != nil && scope.AssignedToID != nil:
		args = append(args, *scope.TeamID)
		teamPos := len(args)
		args = append(args, *scope.AssignedToID)
		clauses = append(clauses, fmt.Sprintf("(assigned_team_id=$%d OR assigned_to_id=$%d)", teamPos, len(args)))
	case scope.AssignedToID != nil:
		args = append(args, *scope.AssignedToID)
		clauses = append(clauses, fmt.Sprintf("assigned_to_id=$%d", len(args)))
	case scope.TeamID != nil:
		args = append(args, *scope.TeamID)
		clauses = append(clauses, fmt.Sprintf("assigned_team_id=$%d", len(args)))
	case scope.CustomerID != nil:
		args = append(args, *scope.CustomerID)
		clauses = append(clauses, fmt.Sprintf("customer_id=$%d", len(args)))
	case len(scope.TeamIDs) > 0:
		placeholders := make([]string, len(scope.TeamIDs))
		for i, teamID := range scope.TeamIDs {
			args = append(args, teamID)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("assigned_team_id IN (%s)", strings.Join(placeholders, ",")))
	default:
		// An ops member without a team falls back to assignment-only view;
		// an empty scope with no fields exposes nothing.
		clauses = append(clauses, "1=0")
	}
	return clauses, args
}

func complaintFields(c *domain.Complaint) []any {
	return []any{
		&c.ID,
		&c.ComplaintNumber,
		&c.Product,
		&c.Subproduct,
		&c.Issue,
		&c.Subissue,
		&c.Description,
		&c.Severity,
		&c.Status,
		&c.CustomerID,
		&c.AssignedTeamID,
		&c.AssignedToID,
		&c.SLAHours,
		&c.SLABreach,
		&c.ResolutionTime,
		&c.CreatedAt,
		&c.UpdatedAt,
	}
}

func scanComplaints(rows pgx.Rows) ([]domain.Complaint, error) {
	var result []domain.Complaint
	for rows.Next() {
		var complaint domain.Complaint
		if err := rows.Scan(complaintFields(&complaint)...); err != nil {
			return nil, err
		}
		result = append(result, complaint)
	}
	return result, rows.Err()
}

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation, the retryable condition for complaint-number collisions.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
