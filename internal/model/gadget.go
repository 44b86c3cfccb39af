package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status is the lifecycle state of a gadget. Stored canonically capitalized.
type Status string

const (
	StatusAvailable      Status = "Available"
	StatusDeployed       Status = "Deployed"
	StatusDestroyed      Status = "Destroyed"
	StatusDecommissioned Status = "Decommissioned"
)

// canonicalStatuses maps a lowercased status string to its canonical form.
var canonicalStatuses = map[string]Status{
	"available":      StatusAvailable,
	"deployed":       StatusDeployed,
	"destroyed":      StatusDestroyed,
	"decommissioned": StatusDecommissioned,
}

// NormalizeStatus resolves a caller-supplied status string case-insensitively
// to its canonical capitalization. The boolean is false for unknown values.
func NormalizeStatus(s string) (Status, bool) {
	status, ok := canonicalStatuses[strings.ToLower(strings.TrimSpace(s))]
	return status, ok
}

// Gadget represents a single piece of IMF field equipment.
type Gadget struct {
	ID               uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Name             string     `json:"name" gorm:"size:255;not null"`
	Codename         string     `json:"codename" gorm:"uniqueIndex;size:255;not null"`
	Status           Status     `json:"status" gorm:"size:32;not null;index"`
	DecommissionedAt *time.Time `json:"decommissioned_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (g *Gadget) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
