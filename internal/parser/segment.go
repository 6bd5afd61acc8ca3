// Package parser turns a raw multi-part paste from the responses view into
// discrete blocks and extracts the fields that matter from each one. All
// functions are pure; malformed input degrades to empty results or the
// "Unknown" sentinel, never to an error.
package parser

import (
	"strings"

	"go-response-tracker/internal/models"
)

// DefaultNoise lists site boilerplate substrings dropped before
// segmentation. Matching is case-sensitive, as the site renders them.
var DefaultNoise = []string{
	"был в сети",
	"была в сети",
	"был(а) в сети",
	"Хотите выделиться",
	"Поднимите резюме",
	"Продвиньте отклик",
}

// Block is a run of non-status lines closed by a recognized status label.
type Block struct {
	Lines  []string
	Status models.StatusTag
}

// Segmenter splits pasted text into blocks. The status labels are the only
// reliable anchor in the paste: boilerplate is interleaved everywhere, but a
// status line always terminates a record.
type Segmenter struct {
	noise []string
}

// NewSegmenter creates a segmenter with the given noise substrings.
// nil falls back to DefaultNoise.
func NewSegmenter(noise []string) *Segmenter {
	if noise == nil {
		noise = DefaultNoise
	}
	return &Segmenter{noise: noise}
}

// Split segments raw text into completed blocks. A trailing run with no
// status line is discarded (the user has not pasted its status yet); a status
// line with nothing accumulated before it yields nothing.
func (s *Segmenter) Split(raw string) []Block {
	var blocks []Block
	var current []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || s.isNoise(line) {
			continue
		}
		if status, ok := models.ParseStatus(line); ok {
			if len(current) > 0 {
				blocks = append(blocks, Block{Lines: current, Status: status})
			}
			current = nil
			continue
		}
		current = append(current, line)
	}
	return blocks
}

func (s *Segmenter) isNoise(line string) bool {
	for _, n := range s.noise {
		if strings.Contains(line, n) {
			return true
		}
	}
	return false
}
