package entity

import (
	"time"

	"gorm.io/gorm"
)

// SyncMeta carries the offline-first sync state shared by every document
// entity. Clients create documents locally and push them later; ServerID
// is assigned by the central server on first acknowledgement.
type SyncMeta struct {
	ServerID         *string `gorm:"size:100;index" json:"server_id,omitempty"`
	IsSynced         bool    `gorm:"default:false;index" json:"is_synced"`
	LastModified     int64   `gorm:"not null;default:0" json:"last_modified"` // epoch millis
	IsDeletedLocally bool    `gorm:"default:false" json:"is_deleted_locally"`
}

// Touch stamps the record as dirty for the next sync cycle
func (m *SyncMeta) Touch() {
	m.IsSynced = false
	m.LastModified = time.Now().UnixMilli()
}

// MarkSynced records a successful push to the central server
func (m *SyncMeta) MarkSynced(serverID string) {
	if serverID != "" {
		m.ServerID = &serverID
	}
	m.IsSynced = true
}

// BeforeSave keeps LastModified honest even when callers forget Touch
func (m *SyncMeta) BeforeSave(tx *gorm.DB) error {
	if m.LastModified == 0 {
		m.LastModified = time.Now().UnixMilli()
	}
	return nil
}
