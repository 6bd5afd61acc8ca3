package models

import (
	"time"
)

// Unknown is the sentinel stored when a field could not be extracted
// from a pasted block. Extraction never fails, it degrades to this value.
const Unknown = "Unknown"

// StatusTag is one of the six response statuses the recruitment site shows.
// Only an exact match on one of these labels closes a block during
// segmentation; anything else is treated as ordinary block content.
type StatusTag string

const (
	StatusNotViewed StatusTag = "Не просмотрен"
	StatusViewed    StatusTag = "Просмотрен"
	StatusTestTask  StatusTag = "Тестовое задание"
	StatusInvited   StatusTag = "Приглашение"
	StatusInterview StatusTag = "Интервью"
	StatusRejected  StatusTag = "Отказ"
)

// AllStatuses returns the closed label set in a fixed order.
func AllStatuses() []StatusTag {
	return []StatusTag{
		StatusNotViewed,
		StatusViewed,
		StatusTestTask,
		StatusInvited,
		StatusInterview,
		StatusRejected,
	}
}

// ParseStatus reports whether line is exactly one of the status labels.
func ParseStatus(line string) (StatusTag, bool) {
	for _, s := range AllStatuses() {
		if line == string(s) {
			return s, true
		}
	}
	return "", false
}

// RoleTag is the role family assigned to a title by the classifier.
type RoleTag string

const (
	RoleProduct          RoleTag = "product"
	RoleProject          RoleTag = "project"
	RoleProductMarketing RoleTag = "product-marketing"
	RoleAnalyst          RoleTag = "analyst"
	RoleMarketing        RoleTag = "marketing"
	RoleDesign           RoleTag = "design"
	RoleDevelopment      RoleTag = "development"
	RoleHR               RoleTag = "hr"
	RoleSales            RoleTag = "sales"
	RoleOther            RoleTag = "other"
)

// GradeTag is the seniority grade assigned to a title by the classifier.
type GradeTag string

const (
	GradeJunior GradeTag = "junior"
	GradeMiddle GradeTag = "middle"
	GradeLead   GradeTag = "lead"
)

// CandidateRecord is one parsed application, produced by the ingestion
// pipeline. It is not persisted until the store accepts it.
type CandidateRecord struct {
	Title        string
	Company      string
	Status       StatusTag
	ResponseDate string
	Role         RoleTag
	Grade        GradeTag
	Fingerprint  string
	RawSummary   string
}

// ApplicationRecord is a persisted application. (user_id, fingerprint) is
// unique; the store drops duplicate inserts instead of erroring. Records are
// immutable once written.
type ApplicationRecord struct {
	ID           uint      `gorm:"primaryKey"`
	UserID       int64     `gorm:"uniqueIndex:uniq_user_fingerprint;index"`
	ImportedAt   time.Time `gorm:"index"`
	ResponseDate string    `gorm:"size:64"`
	Company      string    `gorm:"size:256"`
	Title        string    `gorm:"size:256"`
	Status       StatusTag `gorm:"size:32;index"`
	Role         RoleTag   `gorm:"size:32;index"`
	Grade        GradeTag  `gorm:"size:16;index"`
	Fingerprint  string    `gorm:"uniqueIndex:uniq_user_fingerprint;size:16"`
	RawSummary   string    `gorm:"type:text"`
}

// BufferedText is the per-user scratch buffer pasted text accumulates in
// between finalize calls. One row per user, created lazily on first append.
type BufferedText struct {
	UserID    int64  `gorm:"primaryKey"`
	Text      string `gorm:"type:text"`
	UpdatedAt time.Time
}

// ProcessedEvent marks an inbound event id as already applied so that a
// redelivery is a no-op. Rows are never deleted.
type ProcessedEvent struct {
	EventID int `gorm:"primaryKey"`
}
