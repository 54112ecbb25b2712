package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oyilmaz/deptportal/internal/app/models"
	"github.com/oyilmaz/deptportal/internal/pkg/apperrors"
)

// NoticeRepository handles notice database operations
type NoticeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNoticeRepository creates a new NoticeRepository
func NewNoticeRepository(db *pgxpool.Pool) *NoticeRepository {
	return &NoticeRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *NoticeRepository) baseSelect() squirrel.SelectBuilder {
	return r.sb.Select(
		"n.id", "n.title", "n.content", "n.category",
		"n.attachment_url", "n.attachment_type", "n.author_id",
		"n.created_at", "n.updated_at",
		"u.id", "u.name", "u.email", "u.role",
	).
		From("notices n").
		Join("users u ON n.author_id = u.id")
}

func scanNotice(row pgx.Row) (*models.Notice, error) {
	var n models.Notice
	var author models.UserSummary
	err := row.Scan(
		&n.ID, &n.Title, &n.Content, &n.Category,
		&n.AttachmentURL, &n.AttachmentType, &n.AuthorID,
		&n.CreatedAt, &n.UpdatedAt,
		&author.ID, &author.Name, &author.Email, &author.Role,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoticeNotFound
		}
		return nil, fmt.Errorf("failed to scan notice: %w", err)
	}
	n.Author = &author
	return &n, nil
}

// Create inserts a notice and populates its generated fields
func (r *NoticeRepository) Create(ctx context.Context, notice *models.Notice) error {
	sql, args, err := r.sb.Insert("notices").
		Columns("title", "content", "category", "attachment_url", "attachment_type", "author_id").
		Values(notice.Title, notice.Content, notice.Category, notice.AttachmentURL, notice.AttachmentType, notice.AuthorID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert notice query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&notice.ID, &notice.CreatedAt, &notice.UpdatedAt); err != nil {
		return fmt.Errorf("failed to insert notice: %w", err)
	}
	return nil
}

// GetByID retrieves a notice with its author summary
func (r *NoticeRepository) GetByID(ctx context.Context, id int64) (*models.Notice, error) {
	sql, args, err := r.baseSelect().Where(squirrel.Eq{"n.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get notice query: %w", err)
	}
	return scanNotice(r.db.QueryRow(ctx, sql, args...))
}

// List retrieves notices newest first, optionally filtered by category
func (r *NoticeRepository) List(ctx context.Context, category *models.NoticeCategory) ([]models.Notice, error) {
	query := r.baseSelect().OrderBy("n.created_at DESC")
	if category != nil {
		query = query.Where(squirrel.Eq{"n.category": *category})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list notices query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list notices: %w", err)
	}
	defer rows.Close()

	notices := []models.Notice{}
	for rows.Next() {
		n, err := scanNotice(rows)
		if err != nil {
			return nil, err
		}
		notices = append(notices, *n)
	}
	return notices, rows.Err()
}

// Update persists the mutable fields of a notice
func (r *NoticeRepository) Update(ctx context.Context, notice *models.Notice) error {
	sql, args, err := r.sb.Update("notices").
		Set("title", notice.Title).
		Set("content", notice.Content).
		Set("category", notice.Category).
		Set("attachment_url", notice.AttachmentURL).
		Set("attachment_type", notice.AttachmentType).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": notice.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update notice query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to update notice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNoticeNotFound
	}
	return nil
}

// Delete removes a notice
func (r *NoticeRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("notices").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete notice query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to delete notice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNoticeNotFound
	}
	return nil
}
