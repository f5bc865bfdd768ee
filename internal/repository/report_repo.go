package repository

import (
	"context"
	"errors"
	"fmt"

	"safety_reports/internal/model"

	"github.com/jackc/pgx/v5"
)

// ReportRepository defines operations for safety report data
type ReportRepository interface {
	Create(ctx context.Context, report *model.Report) error
	FindByID(ctx context.Context, id int) (*model.Report, error)
	FindByUser(ctx context.Context, userID int) ([]model.Report, error)
	Update(ctx context.Context, report *model.Report) error
	Delete(ctx context.Context, id int) error
}

type reportRepository struct {
	db DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db DB) ReportRepository {
	return &reportRepository{db: db}
}

// Create inserts a new report and its media attachments
func (r *reportRepository) Create(ctx context.Context, report *model.Report) error {
	sql := `INSERT INTO reports (user_id, title, description, location, status)
            VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql, report.UserID, report.Title, report.Description, report.Location, report.Status).
		Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	for i := range report.MediaAttachments {
		a := &report.MediaAttachments[i]
		a.ReportID = report.ID
		attachSQL := `INSERT INTO media_attachments (report_id, url, type) VALUES ($1, $2, $3) RETURNING id`
		if err := r.db.QueryRow(ctx, attachSQL, a.ReportID, a.URL, a.Type).Scan(&a.ID); err != nil {
			return fmt.Errorf("failed to create media attachment: %w", err)
		}
	}
	return nil
}

// FindByID retrieves a report and its media attachments by report ID
func (r *reportRepository) FindByID(ctx context.Context, id int) (*model.Report, error) {
	report := &model.Report{}
	sql := `SELECT id, user_id, title, description, location, status, created_at, updated_at
            FROM reports WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&report.ID, &report.UserID, &report.Title, &report.Description,
		&report.Location, &report.Status, &report.CreatedAt, &report.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find report by ID: %w", err)
	}

	attachments, err := r.findAttachments(ctx, `SELECT id, report_id, url, type FROM media_attachments WHERE report_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	report.MediaAttachments = attachments[id]
	if report.MediaAttachments == nil {
		report.MediaAttachments = []model.MediaAttachment{}
	}
	return report, nil
}

// FindByUser retrieves all reports belonging to a user, newest first
func (r *reportRepository) FindByUser(ctx context.Context, userID int) ([]model.Report, error) {
	sql := `SELECT id, user_id, title, description, location, status, created_at, updated_at
            FROM reports WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports by user: %w", err)
	}
	defer rows.Close()

	reports := []model.Report{}
	for rows.Next() {
		var report model.Report
		if err := rows.Scan(
			&report.ID, &report.UserID, &report.Title, &report.Description,
			&report.Location, &report.Status, &report.CreatedAt, &report.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		report.MediaAttachments = []model.MediaAttachment{}
		reports = append(reports, report)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report rows: %w", err)
	}
	if len(reports) == 0 {
		return reports, nil
	}

	attachSQL := `SELECT id, report_id, url, type FROM media_attachments
                  WHERE report_id IN (SELECT id FROM reports WHERE user_id = $1) ORDER BY id`
	attachments, err := r.findAttachments(ctx, attachSQL, userID)
	if err != nil {
		return nil, err
	}
	for i := range reports {
		if list, ok := attachments[reports[i].ID]; ok {
			reports[i].MediaAttachments = list
		}
	}
	return reports, nil
}

// findAttachments runs an attachment query and groups the rows by report ID
func (r *reportRepository) findAttachments(ctx context.Context, sql string, arg interface{}) (map[int][]model.MediaAttachment, error) {
	rows, err := r.db.Query(ctx, sql, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query media attachments: %w", err)
	}
	defer rows.Close()

	grouped := make(map[int][]model.MediaAttachment)
	for rows.Next() {
		var a model.MediaAttachment
		if err := rows.Scan(&a.ID, &a.ReportID, &a.URL, &a.Type); err != nil {
			return nil, fmt.Errorf("failed to scan media attachment row: %w", err)
		}
		grouped[a.ReportID] = append(grouped[a.ReportID], a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating media attachment rows: %w", err)
	}
	return grouped, nil
}

// Update modifies an existing report
func (r *reportRepository) Update(ctx context.Context, report *model.Report) error {
	sql := `UPDATE reports
            SET title = $1, description = $2, location = $3, status = $4, updated_at = NOW()
            WHERE id = $5 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql, report.Title, report.Description, report.Location, report.Status, report.ID).
		Scan(&report.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("report not found for update")
		}
		return fmt.Errorf("failed to update report: %w", err)
	}
	return nil
}

// Delete removes a report; attachments cascade at the database level
func (r *reportRepository) Delete(ctx context.Context, id int) error {
	sql := `DELETE FROM reports WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("report not found for deletion")
	}
	return nil
}
