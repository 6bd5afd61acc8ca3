package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-response-tracker/internal/models"
)

func TestIngest_EndToEnd(t *testing.T) {
	p := NewPipeline(nil)
	records := p.Ingest("Продакт-менеджер\nAcme Corp\nСегодня\nПросмотрен")
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "Продакт-менеджер", rec.Title)
	assert.Equal(t, "Acme Corp", rec.Company)
	assert.Equal(t, "Сегодня", rec.ResponseDate)
	assert.Equal(t, models.StatusViewed, rec.Status)
	assert.Equal(t, models.RoleProduct, rec.Role)
	assert.Equal(t, models.GradeMiddle, rec.Grade)
	assert.NotEmpty(t, rec.Fingerprint)
	assert.Contains(t, rec.RawSummary, "Acme Corp")
	assert.Contains(t, rec.RawSummary, "Просмотрен")
}

func TestIngest_DuplicateBlocksCollapseToFirst(t *testing.T) {
	p := NewPipeline(nil)
	block := "Аналитик\nGlobex\nОтказ\n"
	records := p.Ingest(block + block)
	require.Len(t, records, 1)
	assert.Equal(t, "Аналитик", records[0].Title)
}

func TestIngest_PreservesPasteOrder(t *testing.T) {
	p := NewPipeline(nil)
	records := p.Ingest("Первый\nA\nОтказ\nВторой\nB\nПросмотрен\nТретий\nC\nОтказ")
	require.Len(t, records, 3)
	assert.Equal(t, "Первый", records[0].Title)
	assert.Equal(t, "Второй", records[1].Title)
	assert.Equal(t, "Третий", records[2].Title)
}

func TestIngest_EmptyOrUnrecognizedInput(t *testing.T) {
	p := NewPipeline(nil)
	assert.Empty(t, p.Ingest(""))
	assert.Empty(t, p.Ingest("no status lines\nat all"))
}

// A block that yields only sentinels is still emitted; filtering such
// records is the caller's choice.
func TestIngest_AllUnknownBlockIsEmitted(t *testing.T) {
	p := NewPipeline(nil)
	records := p.Ingest("5 февраля\nОтказ")
	require.Len(t, records, 1)
	assert.Equal(t, models.Unknown, records[0].Title)
	assert.Equal(t, models.Unknown, records[0].Company)
	assert.Equal(t, "5 февраля", records[0].ResponseDate)
}
