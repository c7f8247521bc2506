package model

import "time"

// CronJobLog records one run of a scheduled background job.
type CronJobLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	JobName    string    `gorm:"not null;type:varchar(100);index" json:"job_name"`
	Status     string    `gorm:"not null;type:varchar(20)" json:"status"` // running, completed, failed
	Detail     string    `gorm:"type:text" json:"detail,omitempty"`
	FinishedAt time.Time `json:"finished_at,omitempty"`
}
