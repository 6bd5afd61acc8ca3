package parser

import (
	"testing"

	"go-response-tracker/internal/models"
)

func TestExtractFields(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		title   string
		company string
		date    string
	}{
		{
			name:    "date first",
			lines:   []string{"5 февраля", "Senior Product Manager", "Acme"},
			title:   "Senior Product Manager",
			company: "Acme",
			date:    "5 февраля",
		},
		{
			name:    "relative date in the middle",
			lines:   []string{"Продакт-менеджер", "Сегодня", "Acme Corp"},
			title:   "Продакт-менеджер",
			company: "Acme Corp",
			date:    "Сегодня",
		},
		{
			name:    "no date",
			lines:   []string{"Аналитик", "Рога и Копыта"},
			title:   "Аналитик",
			company: "Рога и Копыта",
			date:    models.Unknown,
		},
		{
			name:    "only first date wins but all date lines excluded",
			lines:   []string{"Вчера", "12 марта", "Дизайнер", "Globex"},
			title:   "Дизайнер",
			company: "Globex",
			date:    "Вчера",
		},
		{
			name:    "missing company",
			lines:   []string{"Сегодня", "Маркетолог"},
			title:   "Маркетолог",
			company: models.Unknown,
			date:    "Сегодня",
		},
		{
			name:    "only a date",
			lines:   []string{"1 января"},
			title:   models.Unknown,
			company: models.Unknown,
			date:    "1 января",
		},
		{
			name:    "empty block",
			lines:   nil,
			title:   models.Unknown,
			company: models.Unknown,
			date:    models.Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ExtractFields(tt.lines)
			if f.Title != tt.title {
				t.Errorf("title = %q, want %q", f.Title, tt.title)
			}
			if f.Company != tt.company {
				t.Errorf("company = %q, want %q", f.Company, tt.company)
			}
			if f.Date != tt.date {
				t.Errorf("date = %q, want %q", f.Date, tt.date)
			}
		})
	}
}

func TestIsDateToken(t *testing.T) {
	valid := []string{"Сегодня", "Вчера", "1 января", "31 декабря", "05 мая"}
	for _, s := range valid {
		if !isDateToken(s) {
			t.Errorf("isDateToken(%q) = false, want true", s)
		}
	}
	invalid := []string{"сегодня", "123 января", "5 january", "января", "5 февраля 2024", ""}
	for _, s := range invalid {
		if isDateToken(s) {
			t.Errorf("isDateToken(%q) = true, want false", s)
		}
	}
}
