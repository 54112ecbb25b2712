package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oyilmaz/deptportal/internal/app/models"
)

// RemarkRepository handles remark database operations. Remarks are
// append-only, so the repository exposes no update or delete methods.
type RemarkRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRemarkRepository creates a new RemarkRepository
func NewRemarkRepository(db *pgxpool.Pool) *RemarkRepository {
	return &RemarkRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *RemarkRepository) baseSelect() squirrel.SelectBuilder {
	return r.sb.Select(
		"rm.id", "rm.content", "rm.author_id", "rm.application_id", "rm.created_at",
		"u.id", "u.name", "u.email", "u.role",
	).
		From("remarks rm").
		Join("users u ON rm.author_id = u.id")
}

// Create appends a remark and populates its generated fields
func (r *RemarkRepository) Create(ctx context.Context, remark *models.Remark) error {
	sql, args, err := r.sb.Insert("remarks").
		Columns("content", "author_id", "application_id").
		Values(remark.Content, remark.AuthorID, remark.ApplicationID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert remark query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&remark.ID, &remark.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert remark: %w", err)
	}
	return nil
}

// ListByApplication retrieves an application's remark log oldest first
func (r *RemarkRepository) ListByApplication(ctx context.Context, applicationID int64) ([]models.Remark, error) {
	sql, args, err := r.baseSelect().
		Where(squirrel.Eq{"rm.application_id": applicationID}).
		OrderBy("rm.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list remarks query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list remarks: %w", err)
	}
	defer rows.Close()

	remarks := []models.Remark{}
	for rows.Next() {
		var rm models.Remark
		var author models.UserSummary
		if err := rows.Scan(
			&rm.ID, &rm.Content, &rm.AuthorID, &rm.ApplicationID, &rm.CreatedAt,
			&author.ID, &author.Name, &author.Email, &author.Role,
		); err != nil {
			return nil, fmt.Errorf("failed to scan remark: %w", err)
		}
		rm.Author = &author
		remarks = append(remarks, rm)
	}
	return remarks, rows.Err()
}

// ListByApplications retrieves remark logs for a set of applications in one
// round trip, keyed by application id, each log oldest first.
func (r *RemarkRepository) ListByApplications(ctx context.Context, applicationIDs []int64) (map[int64][]models.Remark, error) {
	result := make(map[int64][]models.Remark, len(applicationIDs))
	if len(applicationIDs) == 0 {
		return result, nil
	}

	sql, args, err := r.baseSelect().
		Where(squirrel.Eq{"rm.application_id": applicationIDs}).
		OrderBy("rm.application_id", "rm.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list remarks query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list remarks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rm models.Remark
		var author models.UserSummary
		if err := rows.Scan(
			&rm.ID, &rm.Content, &rm.AuthorID, &rm.ApplicationID, &rm.CreatedAt,
			&author.ID, &author.Name, &author.Email, &author.Role,
		); err != nil {
			return nil, fmt.Errorf("failed to scan remark: %w", err)
		}
		rm.Author = &author
		result[rm.ApplicationID] = append(result[rm.ApplicationID], rm)
	}
	return result, rows.Err()
}
