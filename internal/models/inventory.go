package models

import (
	"time"

	"gorm.io/datatypes"
)

type InventoryType string

const (
	InventoryPhone    InventoryType = "PHONE"
	InventoryComputer InventoryType = "COMPUTER"
	InventoryTablet   InventoryType = "TABLET"
	InventoryMonitor  InventoryType = "MONITOR"
	InventoryOther    InventoryType = "OTHER"
)

func ValidInventoryType(t InventoryType) bool {
	switch t {
	case InventoryPhone, InventoryComputer, InventoryTablet, InventoryMonitor, InventoryOther:
		return true
	}
	return false
}

type InventoryStatus string

const (
	InventoryAvailable   InventoryStatus = "AVAILABLE"
	InventoryAssigned    InventoryStatus = "ASSIGNED"
	InventoryMaintenance InventoryStatus = "MAINTENANCE"
)

func ValidInventoryStatus(s InventoryStatus) bool {
	switch s {
	case InventoryAvailable, InventoryAssigned, InventoryMaintenance:
		return true
	}
	return false
}

type InventoryItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name         string          `gorm:"size:255;not null" json:"name"`
	Type         InventoryType   `gorm:"size:16;not null" json:"type"`
	SerialNumber string          `gorm:"uniqueIndex;size:255;not null" json:"serial_number"`
	Status       InventoryStatus `gorm:"size:16;not null;default:AVAILABLE" json:"status"`

	AssignedUserID    *uint `gorm:"index" json:"assigned_user_id"`
	AssignedProjectID *uint `gorm:"index" json:"assigned_project_id"`

	PurchaseDate *datatypes.Date `json:"purchase_date"`
	Notes        *string         `gorm:"type:text" json:"notes"`
}
