package utils

import (
	"encoding/json"
	"fmt"
	"time"

	"socialstore/models"

	"gorm.io/gorm"
)

var auditDB *gorm.DB

func InitAuditLog(dbInstance *gorm.DB) {
	auditDB = dbInstance
}

type AuditLogEntry struct {
	EventType   models.AuditEventType   `json:"event_type"`
	EventAction models.AuditEventAction `json:"event_action"`
	UserID      uint                    `json:"user_id"`
	IPAddress   string                  `json:"ip_address"`
	UserAgent   string                  `json:"user_agent"`
	Resource    string                  `json:"resource"`
	Details     map[string]interface{}  `json:"details"`
	Status      string                  `json:"status"`
	ErrorMsg    string                  `json:"error_msg"`
}

func LogAuditEvent(entry AuditLogEntry) error {
	if auditDB == nil {
		return fmt.Errorf("audit log database not initialized")
	}

	detailsJSON, _ := json.Marshal(entry.Details)

	log := &models.AuditLog{
		EventType:   string(entry.EventType),
		EventAction: string(entry.EventAction),
		UserID:      entry.UserID,
		IPAddress:   entry.IPAddress,
		UserAgent:   entry.UserAgent,
		Resource:    entry.Resource,
		Details:     string(detailsJSON),
		Status:      entry.Status,
		ErrorMsg:    entry.ErrorMsg,
		CreatedAt:   time.Now(),
	}

	return auditDB.Create(log).Error
}

// LogSocialEvent records a provider link lifecycle event (connect,
// disconnect, refused disconnect).
func LogSocialEvent(action models.AuditEventAction, userID uint, provider, ipAddress, userAgent string, success bool, details map[string]interface{}) error {
	status := "success"
	if !success {
		status = "error"
	}

	return LogAuditEvent(AuditLogEntry{
		EventType:   models.AuditEventSocial,
		EventAction: action,
		UserID:      userID,
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
		Resource:    provider,
		Details:     details,
		Status:      status,
	})
}

// LogMaintenanceEvent records purge/backup style operations.
func LogMaintenanceEvent(action models.AuditEventAction, resource string, details map[string]interface{}) error {
	return LogAuditEvent(AuditLogEntry{
		EventType:   models.AuditEventMaintenance,
		EventAction: action,
		Resource:    resource,
		Details:     details,
		Status:      "success",
	})
}

// CleanupAuditLogs deletes audit rows older than retentionDays and returns
// how many were removed.
func CleanupAuditLogs(db *gorm.DB, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		retentionDays = 90
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	result := db.Where("created_at < ?", cutoff).Delete(&models.AuditLog{})
	return result.RowsAffected, result.Error
}
