package service

import (
	"context"
	"errors"
	"fmt"

	"safety_reports/internal/model"
	"safety_reports/internal/repository"

	"go.uber.org/zap"
)

// ErrReportNotFound covers both a missing report and a report owned by
// someone else, so responses never confirm another user's report exists.
var ErrReportNotFound = errors.New("report not found")

// ReportService defines operations for safety reports
type ReportService interface {
	CreateReport(ctx context.Context, userID int, req model.CreateReportRequest) (*model.Report, error)
	GetUserReports(ctx context.Context, userID int) ([]model.Report, error)
	UpdateReport(ctx context.Context, reportID, userID int, req model.UpdateReportRequest) (*model.Report, error)
	DeleteReport(ctx context.Context, reportID, userID int) error
}

type reportService struct {
	repo   repository.ReportRepository
	logger *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(repo repository.ReportRepository, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

func (s *reportService) CreateReport(ctx context.Context, userID int, req model.CreateReportRequest) (*model.Report, error) {
	attachments := make([]model.MediaAttachment, 0, len(req.MediaAttachments))
	for _, a := range req.MediaAttachments {
		attachments = append(attachments, model.MediaAttachment{URL: a.URL, Type: a.Type})
	}

	report := &model.Report{
		UserID:           userID,
		Title:            req.Title,
		Description:      req.Description,
		Location:         req.Location,
		Status:           model.ReportStatusPending,
		MediaAttachments: attachments,
	}

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to create report in repo: %w", err)
	}

	s.logger.Info("Report created", zap.Int("report_id", report.ID), zap.Int("user_id", userID))
	return report, nil
}

func (s *reportService) GetUserReports(ctx context.Context, userID int) ([]model.Report, error) {
	reports, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user reports from repo: %w", err)
	}
	return reports, nil
}

func (s *reportService) UpdateReport(ctx context.Context, reportID, userID int, req model.UpdateReportRequest) (*model.Report, error) {
	existing, err := s.repo.FindByID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to find report for update: %w", err)
	}
	if existing == nil || existing.UserID != userID {
		return nil, ErrReportNotFound
	}

	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.Location != nil {
		existing.Location = *req.Location
	}
	if req.Status != nil {
		existing.Status = *req.Status
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update report: %w", err)
	}

	s.logger.Info("Report updated", zap.Int("report_id", reportID), zap.Int("user_id", userID))
	return existing, nil
}

func (s *reportService) DeleteReport(ctx context.Context, reportID, userID int) error {
	existing, err := s.repo.FindByID(ctx, reportID)
	if err != nil {
		return fmt.Errorf("failed to find report for deletion: %w", err)
	}
	if existing == nil || existing.UserID != userID {
		return ErrReportNotFound
	}

	if err := s.repo.Delete(ctx, reportID); err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}

	s.logger.Info("Report deleted", zap.Int("report_id", reportID), zap.Int("user_id", userID))
	return nil
}
