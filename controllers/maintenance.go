package controllers

import (
	"strconv"
	"time"

	"socialstore/database"
	"socialstore/models"
	"socialstore/store"
	"socialstore/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const defaultPartialMaxAge = 14 * 24 * time.Hour

// MaintenanceController handles housekeeping of expired rows and backups
type MaintenanceController struct {
	db      *gorm.DB
	storage *store.Storage
}

// NewMaintenanceController creates a new maintenance controller
func NewMaintenanceController(db *gorm.DB) *MaintenanceController {
	return &MaintenanceController{db: db, storage: store.NewStorage(db)}
}

// PurgeAssociations deletes OpenID associations whose validity window has
// lapsed
func (c *MaintenanceController) PurgeAssociations(ctx *gin.Context) {
	ids, err := c.storage.Association.Expired(time.Now().Unix())
	if err != nil {
		utils.InternalError(ctx, "Failed to find expired associations")
		return
	}

	if err := c.storage.Association.Remove(ids); err != nil {
		utils.InternalError(ctx, "Failed to remove expired associations")
		return
	}

	utils.LogMaintenanceEvent(models.AuditActionPurge, "social_auth_association",
		map[string]interface{}{"removed": len(ids)})
	utils.Success(ctx, 200, gin.H{"removed": len(ids)})
}

// PurgePartials deletes in-flight login state older than ?max_age
// (Go duration, default 336h)
func (c *MaintenanceController) PurgePartials(ctx *gin.Context) {
	maxAge := defaultPartialMaxAge
	if v := ctx.Query("max_age"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			utils.BadRequest(ctx, "Invalid max_age duration")
			return
		}
		maxAge = d
	}

	removed, err := c.storage.Partial.PurgeOlderThan(time.Now().Add(-maxAge))
	if err != nil {
		utils.InternalError(ctx, "Failed to purge partial sessions")
		return
	}

	utils.LogMaintenanceEvent(models.AuditActionPurge, "social_auth_partial",
		map[string]interface{}{"removed": removed, "max_age": maxAge.String()})
	utils.Success(ctx, 200, gin.H{"removed": removed})
}

// PurgeAuditLogs trims the audit table to ?retention_days (default 90)
func (c *MaintenanceController) PurgeAuditLogs(ctx *gin.Context) {
	retentionDays := 90
	if v := ctx.Query("retention_days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			utils.BadRequest(ctx, "Invalid retention_days")
			return
		}
		retentionDays = n
	}

	removed, err := utils.CleanupAuditLogs(c.db, retentionDays)
	if err != nil {
		utils.InternalError(ctx, "Failed to clean up audit logs")
		return
	}

	utils.Success(ctx, 200, gin.H{"removed": removed})
}

// Backup snapshots the SQLite database file
func (c *MaintenanceController) Backup(ctx *gin.Context) {
	if database.DBType != "sqlite" {
		utils.BadRequest(ctx, "Backup is only supported for SQLite databases")
		return
	}

	result, err := utils.BackupDatabase(c.db, "")
	if err != nil {
		utils.InternalError(ctx, "Backup failed: "+err.Error())
		return
	}

	utils.LogMaintenanceEvent(models.AuditActionCreate, "backup",
		map[string]interface{}{"path": result.BackupPath, "size": result.Size})
	utils.Created(ctx, result)
}
