package parser

import (
	"regexp"

	"go-response-tracker/internal/models"
)

// The site prints response dates either as a relative word or as
// "<day> <genitive month>", e.g. "5 февраля". No year is ever shown.
var dateRe = regexp.MustCompile(`^\d{1,2} (января|февраля|марта|апреля|мая|июня|июля|августа|сентября|октября|ноября|декабря)$`)

func isDateToken(line string) bool {
	if line == "Сегодня" || line == "Вчера" {
		return true
	}
	return dateRe.MatchString(line)
}

// Fields holds what could be extracted from one block. Missing fields carry
// the Unknown sentinel.
type Fields struct {
	Title   string
	Company string
	Date    string
}

// ExtractFields isolates the date token from a block's lines (status label
// already excluded) and takes the first two remaining lines as title and
// company. The first date-shaped line wins as the date, but every date-shaped
// line is removed from the title/company candidates.
func ExtractFields(lines []string) Fields {
	f := Fields{Title: models.Unknown, Company: models.Unknown, Date: models.Unknown}
	var rest []string
	for _, line := range lines {
		if isDateToken(line) {
			if f.Date == models.Unknown {
				f.Date = line
			}
			continue
		}
		rest = append(rest, line)
	}
	if len(rest) > 0 {
		f.Title = rest[0]
	}
	if len(rest) > 1 {
		f.Company = rest[1]
	}
	return f
}
