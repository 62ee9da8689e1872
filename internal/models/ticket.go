package models

import "time"

type TicketPriority string

const (
	PriorityLow    TicketPriority = "LOW"
	PriorityMedium TicketPriority = "MEDIUM"
	PriorityHigh   TicketPriority = "HIGH"
	PriorityUrgent TicketPriority = "URGENT"
)

func ValidPriority(p TicketPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type TicketStatus string

const (
	StatusPending    TicketStatus = "PENDING"
	StatusInProgress TicketStatus = "IN_PROGRESS"
	StatusInReview   TicketStatus = "IN_REVIEW"
	StatusCompleted  TicketStatus = "COMPLETED"
	StatusClosed     TicketStatus = "CLOSED"
)

func ValidStatus(s TicketStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusInReview, StatusCompleted, StatusClosed:
		return true
	}
	return false
}

type Ticket struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectID  uint  `gorm:"index;not null" json:"project_id"`
	ReporterID uint  `gorm:"index;not null" json:"reporter_id"`
	AssigneeID *uint `gorm:"index" json:"assignee_id"`

	Title       string         `gorm:"size:255;not null" json:"title"`
	Description *string        `gorm:"type:text" json:"description"`
	Priority    TicketPriority `gorm:"size:16;not null;default:MEDIUM" json:"priority"`
	Status      TicketStatus   `gorm:"size:16;not null;default:PENDING" json:"status"`
}
