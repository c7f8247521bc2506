package cron

import (
	"log"
	"time"

	"acadmin/model"
	"acadmin/services/storage"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron    *cron.Cron
	db      *gorm.DB
	storage *storage.Client
}

// NewCronManager creates a new cron manager. The storage client may be nil
// when object storage is not configured; storage jobs are skipped then.
func NewCronManager(db *gorm.DB, storageClient *storage.Client) *CronManager {
	return &CronManager{
		cron:    cron.New(),
		db:      db,
		storage: storageClient,
	}
}

// Start registers and starts all cron jobs
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	// Hourly: remove uploaded rubric originals the request path failed to
	// clean up.
	if _, err := m.cron.AddFunc("@hourly", m.CleanupStaleUploads); err != nil {
		return err
	}

	m.cron.Start()

	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops all cron jobs and waits for running ones to finish
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

func (m *CronManager) logJobStart(jobName string) *model.CronJobLog {
	entry := model.CronJobLog{
		JobName: jobName,
		Status:  "running",
	}
	if err := m.db.Create(&entry).Error; err != nil {
		log.Println("Failed to log cron job start:", err)
	}
	return &entry
}

func (m *CronManager) logJobFinish(entry *model.CronJobLog, status, detail string) {
	entry.Status = status
	entry.Detail = detail
	entry.FinishedAt = time.Now()
	if err := m.db.Save(entry).Error; err != nil {
		log.Println("Failed to log cron job finish:", err)
	}
}
