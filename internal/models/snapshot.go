package model

import "time"

// Snapshot is one stored wire payload, keyed by storage key.
type Snapshot struct {
	Key       string    `gorm:"primaryKey;size:191"`
	Data      []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
