package healthcheck

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// DatabaseChecker verifies the SQLite connection is usable.
type DatabaseChecker struct {
	db *gorm.DB
}

// NewDatabaseChecker creates a database health checker
func NewDatabaseChecker(db *gorm.DB) *DatabaseChecker {
	return &DatabaseChecker{db: db}
}

// Check pings the database.
func (c *DatabaseChecker) Check(ctx context.Context) Check {
	started := time.Now()

	sqlDB, err := c.db.DB()
	if err != nil {
		return Check{
			Status:      StatusUnhealthy,
			Message:     err.Error(),
			LastChecked: started,
			Duration:    time.Since(started),
		}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := StatusHealthy
	message := ""
	if err := sqlDB.PingContext(pingCtx); err != nil {
		status = StatusUnhealthy
		message = err.Error()
	}

	return Check{
		Status:      status,
		Message:     message,
		LastChecked: started,
		Duration:    time.Since(started),
	}
}
