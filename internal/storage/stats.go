package storage

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go-response-tracker/internal/models"
)

// Window selects a trailing time range over ImportedAt. Days == 0 means all
// time. The window filters on when the record was persisted, not on the
// parsed response date, which may be the Unknown sentinel.
type Window struct {
	Days int
}

// AllTime is the unbounded window.
var AllTime = Window{}

// LastDays returns a trailing window of n days.
func LastDays(n int) Window {
	return Window{Days: n}
}

// CompanyCount is one entry of the top-companies ranking.
type CompanyCount struct {
	Company string
	Count   int
}

// Stats aggregates a user's records inside one window. Calendar days with no
// records are absent from ByDay; callers wanting a dense series fill the gaps
// themselves.
type Stats struct {
	Total        int
	ByStatus     map[models.StatusTag]int
	ByRole       map[models.RoleTag]int
	ByGrade      map[models.GradeTag]int
	TopCompanies []CompanyCount
	ByDay        map[string]int
}

// Aggregate computes windowed stats for the user. All groupings come from a
// single filtered query ordered by id, so ties in the company ranking break
// by first-encounter order.
func (s *Store) Aggregate(ctx context.Context, userID int64, w Window, topK int) (*Stats, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if w.Days > 0 {
		cutoff := time.Now().UTC().AddDate(0, 0, -w.Days)
		q = q.Where("imported_at >= ?", cutoff)
	}
	var recs []models.ApplicationRecord
	if err := q.Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to load records for user %d: %w", userID, err)
	}

	stats := &Stats{
		Total:    len(recs),
		ByStatus: make(map[models.StatusTag]int),
		ByRole:   make(map[models.RoleTag]int),
		ByGrade:  make(map[models.GradeTag]int),
		ByDay:    make(map[string]int),
	}
	companyCounts := make(map[string]int)
	var companyOrder []string
	for _, r := range recs {
		stats.ByStatus[r.Status]++
		stats.ByRole[r.Role]++
		stats.ByGrade[r.Grade]++
		stats.ByDay[r.ImportedAt.UTC().Format("2006-01-02")]++
		if _, ok := companyCounts[r.Company]; !ok {
			companyOrder = append(companyOrder, r.Company)
		}
		companyCounts[r.Company]++
	}

	top := make([]CompanyCount, 0, len(companyOrder))
	for _, c := range companyOrder {
		top = append(top, CompanyCount{Company: c, Count: companyCounts[c]})
	}
	// Stable sort keeps encounter order among equal counts.
	sort.SliceStable(top, func(i, j int) bool { return top[i].Count > top[j].Count })
	if topK > 0 && len(top) > topK {
		top = top[:topK]
	}
	stats.TopCompanies = top
	return stats, nil
}
