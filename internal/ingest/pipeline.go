// Package ingest orchestrates the parse flow: segment the paste, extract
// fields per block, classify the title, fingerprint the record, and drop
// in-call duplicates. The whole pipeline is pure and never fails; an empty
// result just means the paste contained no recognizable blocks.
package ingest

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"go-response-tracker/internal/classify"
	"go-response-tracker/internal/fingerprint"
	"go-response-tracker/internal/models"
	"go-response-tracker/internal/parser"
)

type Pipeline struct {
	seg *parser.Segmenter
}

// NewPipeline creates a pipeline around the given segmenter.
// nil uses a segmenter with the default noise list.
func NewPipeline(seg *parser.Segmenter) *Pipeline {
	if seg == nil {
		seg = parser.NewSegmenter(nil)
	}
	return &Pipeline{seg: seg}
}

// Ingest parses raw pasted text into candidate records, in paste order. If
// two blocks in the same call produce the same fingerprint only the first is
// kept; that covers a user pasting the same fragment twice across appends.
// Cross-history dedup is the store's job, not the pipeline's.
func (p *Pipeline) Ingest(raw string) []models.CandidateRecord {
	blocks := p.seg.Split(raw)
	seen := mapset.NewThreadUnsafeSet[string]()
	var records []models.CandidateRecord
	for _, b := range blocks {
		f := parser.ExtractFields(b.Lines)
		rec := models.CandidateRecord{
			Title:        f.Title,
			Company:      f.Company,
			Status:       b.Status,
			ResponseDate: f.Date,
			Role:         classify.Role(f.Title),
			Grade:        classify.Grade(f.Title),
			RawSummary:   strings.Join(b.Lines, "\n") + "\n" + string(b.Status),
		}
		rec.Fingerprint = fingerprint.Sum(rec.Title, rec.Company, rec.ResponseDate, string(rec.Status))
		if !seen.Add(rec.Fingerprint) {
			continue
		}
		records = append(records, rec)
	}
	return records
}
