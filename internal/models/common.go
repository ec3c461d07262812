package models

import "time"

// AuditFields holds standard audit columns shared by all persisted entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`     // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"` // Updated on every write
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}
