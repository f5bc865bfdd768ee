package model

import "time"

const (
	ReportStatusPending  = "pending"
	ReportStatusInReview = "in_review"
	ReportStatusResolved = "resolved"
)

const (
	MediaTypeImage    = "image"
	MediaTypeVideo    = "video"
	MediaTypeDocument = "document"
)

// Report represents a submitted safety report
type Report struct {
	ID               int               `json:"id"`
	UserID           int               `json:"user_id"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	Location         string            `json:"location"`
	Status           string            `json:"status"` // "pending", "in_review" or "resolved"
	MediaAttachments []MediaAttachment `json:"media_attachments"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// MediaAttachment is a media file linked to a report by URL
type MediaAttachment struct {
	ID       int    `json:"id"`
	ReportID int    `json:"report_id"`
	URL      string `json:"url"`
	Type     string `json:"type"` // "image", "video" or "document"
}

// CreateReportRequest is used for submitting a new report
type CreateReportRequest struct {
	Title            string                   `json:"title" binding:"required"`
	Description      string                   `json:"description" binding:"required"`
	Location         string                   `json:"location" binding:"required"`
	MediaAttachments []MediaAttachmentRequest `json:"media_attachments" binding:"omitempty,dive"`
}

// MediaAttachmentRequest is a media attachment supplied at report creation
type MediaAttachmentRequest struct {
	URL  string `json:"url" binding:"required,url"`
	Type string `json:"type" binding:"required,oneof=image video document"`
}

type UpdateReportRequest struct {
	Title       *string `json:"title,omitempty"` // Pointers to allow partial updates
	Description *string `json:"description,omitempty"`
	Location    *string `json:"location,omitempty"`
	Status      *string `json:"status,omitempty" binding:"omitempty,oneof=pending in_review resolved"`
}
