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

// ApplicationRepository handles application database operations
type ApplicationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *ApplicationRepository) baseSelect() squirrel.SelectBuilder {
	return r.sb.Select(
		"a.id", "a.title", "a.content", "a.attachment_url", "a.status",
		"a.student_id", "a.created_at", "a.updated_at",
		"u.id", "u.name", "u.email", "u.roll_number",
	).
		From("applications a").
		Join("users u ON a.student_id = u.id")
}

func scanApplication(row pgx.Row) (*models.Application, error) {
	var a models.Application
	var student models.UserSummary
	err := row.Scan(
		&a.ID, &a.Title, &a.Content, &a.AttachmentURL, &a.Status,
		&a.StudentID, &a.CreatedAt, &a.UpdatedAt,
		&student.ID, &student.Name, &student.Email, &student.RollNumber,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to scan application: %w", err)
	}
	a.Student = &student
	a.Remarks = []models.Remark{}
	return &a, nil
}

// Create inserts an application in PENDING state
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	sql, args, err := r.sb.Insert("applications").
		Columns("title", "content", "attachment_url", "status", "student_id").
		Values(app.Title, app.Content, app.AttachmentURL, app.Status, app.StudentID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert application query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt); err != nil {
		return fmt.Errorf("failed to insert application: %w", err)
	}
	return nil
}

// GetByID retrieves an application with its student summary
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	sql, args, err := r.baseSelect().Where(squirrel.Eq{"a.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get application query: %w", err)
	}
	return scanApplication(r.db.QueryRow(ctx, sql, args...))
}

// List retrieves applications newest first. A nil studentID lists everything
// (admin view); otherwise only that student's applications are returned.
func (r *ApplicationRepository) List(ctx context.Context, studentID *int64) ([]models.Application, error) {
	query := r.baseSelect().OrderBy("a.created_at DESC")
	if studentID != nil {
		query = query.Where(squirrel.Eq{"a.student_id": *studentID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list applications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *a)
	}
	return apps, rows.Err()
}

// UpdateStatus overwrites the status unconditionally and bumps updated_at.
// Last write wins; there is no version column.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) error {
	sql, args, err := r.sb.Update("applications").
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update status query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}
