// Package storage owns all persistent state: the per-user paste buffer, the
// processed-event markers, and the application records with their
// insert-or-ignore dedup. SQLite serializes writers, which is all the
// per-user serialization the buffer contract needs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"go-response-tracker/internal/models"
)

type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the SQLite database at path and migrates the
// schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection serializes writers; concurrent handlers then queue
	// here instead of surfacing SQLITE_BUSY.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&models.ApplicationRecord{},
		&models.BufferedText{},
		&models.ProcessedEvent{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &Store{db: db}, nil
}

// ---------------- BUFFER STORE ----------------

// Append concatenates text to the user's buffer with a newline separator,
// creating the row on first use.
func (s *Store) Append(ctx context.Context, userID int64, text string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var buf models.BufferedText
		err := tx.Where("user_id = ?", userID).First(&buf).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&models.BufferedText{
				UserID:    userID,
				Text:      text,
				UpdatedAt: time.Now().UTC(),
			}).Error
		}
		if err != nil {
			return err
		}
		if buf.Text == "" {
			buf.Text = text
		} else {
			buf.Text = buf.Text + "\n" + text
		}
		buf.UpdatedAt = time.Now().UTC()
		return tx.Save(&buf).Error
	})
	if err != nil {
		return fmt.Errorf("failed to append buffer for user %d: %w", userID, err)
	}
	return nil
}

// ReadBuffer returns the user's accumulated text, empty string when none.
func (s *Store) ReadBuffer(ctx context.Context, userID int64) (string, error) {
	var buf models.BufferedText
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&buf).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read buffer for user %d: %w", userID, err)
	}
	return buf.Text, nil
}

// ClearBuffer deletes the user's buffer row. Clearing an absent buffer is a
// no-op.
func (s *Store) ClearBuffer(ctx context.Context, userID int64) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.BufferedText{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear buffer for user %d: %w", userID, err)
	}
	return nil
}

// ---------------- IDEMPOTENT EVENT GATE ----------------

// MarkProcessed atomically records eventID as seen. True means this call was
// the first; false means the event was already applied and the caller must
// skip it. A single insert-or-ignore, not check-then-insert, so two
// concurrent deliveries cannot both win.
func (s *Store) MarkProcessed(ctx context.Context, eventID int) (bool, error) {
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.ProcessedEvent{EventID: eventID})
	if res.Error != nil {
		return false, fmt.Errorf("failed to mark event %d: %w", eventID, res.Error)
	}
	return res.RowsAffected == 1, nil
}

// ---------------- APPLICATION RECORDS ----------------

// InsertIfAbsent persists a candidate record for the user unless a record
// with the same fingerprint already exists. The returned bool reports
// whether the record was newly inserted, so callers can show inserted vs
// duplicate counts.
func (s *Store) InsertIfAbsent(ctx context.Context, userID int64, rec models.CandidateRecord) (bool, error) {
	row := models.ApplicationRecord{
		UserID:       userID,
		ImportedAt:   time.Now().UTC(),
		ResponseDate: rec.ResponseDate,
		Company:      rec.Company,
		Title:        rec.Title,
		Status:       rec.Status,
		Role:         rec.Role,
		Grade:        rec.Grade,
		Fingerprint:  rec.Fingerprint,
		RawSummary:   rec.RawSummary,
	}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row)
	if res.Error != nil {
		return false, fmt.Errorf("failed to insert record for user %d: %w", userID, res.Error)
	}
	return res.RowsAffected == 1, nil
}
