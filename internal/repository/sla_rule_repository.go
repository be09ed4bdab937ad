package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// SLARuleRepository manages the sla_matrix table.
type SLARuleRepository interface {
	Create(ctx context.Context, rule *domain.SLARule) error
	Update(ctx context.Context, rule *domain.SLARule) error
	GetByID(ctx context.Context, id int64) (*domain.SLARule, error)
	List(ctx context.Context, limit, offset int) ([]domain.SLARule, error)
	ListActive(ctx context.Context) ([]domain.SLARule, error)
}

type slaRuleRepository struct {
	pool *pgxpool.Pool
}

// NewSLARuleRepository constructs repository.
func NewSLARuleRepository(pool *pgxpool.Pool) SLARuleRepository {
	return &slaRuleRepository{pool: pool}
}

const slaRuleColumns = `id, product, subproduct, issue, subissue, severity, sla_hours, is_active, created_at, updated_at`

func (r *slaRuleRepository) Create(ctx context.Context, rule *domain.SLARule) error {
	const query = `
        INSERT INTO sla_matrix (product, subproduct, issue, subissue, severity, sla_hours, is_active)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		rule.Product,
		rule.Subproduct,
		rule.Issue,
		rule.Subissue,
		rule.Severity,
		rule.SLAHours,
		rule.IsActive,
	).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)
}

func (r *slaRuleRepository) Update(ctx context.Context, rule *domain.SLARule) error {
	const query = `
        UPDATE sla_matrix SET product=$1, subproduct=$2, issue=$3, subissue=$4, severity=$5,
            sla_hours=$6, is_active=$7, updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		rule.Product,
		rule.Subproduct,
		rule.Issue,
		rule.Subissue,
		rule.Severity,
		rule.SLAHours,
		rule.IsActive,
		rule.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *slaRuleRepository) GetByID(ctx context.Context, id int64) (*domain.SLARule, error) {
	var rule domain.SLARule
	if err := r.pool.QueryRow(ctx, `SELECT `+slaRuleColumns+` FROM sla_matrix WHERE id=$1`, id).Scan(slaRuleFields(&rule)...); err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *slaRuleRepository) List(ctx context.Context, limit, offset int) ([]domain.SLARule, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `SELECT ` + slaRuleColumns + ` FROM sla_matrix ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSLARules(rows)
}

// ListActive returns active rules ordered by id so the resolver tie-break is
// stable.
func (r *slaRuleRepository) ListActive(ctx context.Context) ([]domain.SLARule, error) {
	const query = `SELECT ` + slaRuleColumns + ` FROM sla_matrix WHERE is_active=TRUE ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSLARules(rows)
}

func slaRuleFields(rule *domain.SLARule) []any {
	return []any{
		&rule.ID,
		&rule.Product,
		&rule.Subproduct,
		&rule.Issue,
		&rule.Subissue,
		&rule.Severity,
		&rule.SLAHours,
		&rule.IsActive,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	}
}

func scanSLARules(rows pgx.Rows) ([]domain.SLARule, error) {
	var result []domain.SLARule
	for rows.Next() {
		var rule domain.SLARule
		if err := rows.Scan(slaRuleFields(&rule)...); err != nil {
			return nil, err
		}
		result = append(result, rule)
	}
	return result, rows.Err()
}
