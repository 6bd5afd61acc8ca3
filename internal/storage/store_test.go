package storage

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-response-tracker/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return st
}

func candidate(title, company, date string, status models.StatusTag) models.CandidateRecord {
	return models.CandidateRecord{
		Title:        title,
		Company:      company,
		Status:       status,
		ResponseDate: date,
		Role:         models.RoleOther,
		Grade:        models.GradeMiddle,
		Fingerprint:  title + "|" + company + "|" + date + "|" + string(status),
		RawSummary:   title + "\n" + company,
	}
}

func TestBuffer_AppendReadClear(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	const user = int64(42)

	text, err := st.ReadBuffer(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "", text)

	require.NoError(t, st.Append(ctx, user, "a"))
	require.NoError(t, st.Append(ctx, user, "b"))

	text, err = st.ReadBuffer(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "a\nb", text)

	require.NoError(t, st.ClearBuffer(ctx, user))
	text, err = st.ReadBuffer(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "", text)

	//clearing an absent buffer is fine
	require.NoError(t, st.ClearBuffer(ctx, user))
}

func TestBuffer_UsersAreIndependent(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Append(ctx, 1, "one"))
	require.NoError(t, st.Append(ctx, 2, "two"))
	require.NoError(t, st.ClearBuffer(ctx, 1))

	text, err := st.ReadBuffer(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "two", text)
}

func TestBuffer_ConcurrentAppendsLoseNothing(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	const user = int64(7)
	const n = 20

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, st.Append(ctx, user, "x"))
		}()
	}
	wg.Wait()

	text, err := st.ReadBuffer(ctx, user)
	require.NoError(t, err)
	assert.Len(t, text, 2*n-1) // n lines joined by n-1 newlines
}

func TestMarkProcessed_FirstWinsOnce(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	first, err := st.MarkProcessed(ctx, 1001)
	require.NoError(t, err)
	assert.True(t, first)

	for i := 0; i < 5; i++ {
		again, err := st.MarkProcessed(ctx, 1001)
		require.NoError(t, err)
		assert.False(t, again)
	}

	other, err := st.MarkProcessed(ctx, 1002)
	require.NoError(t, err)
	assert.True(t, other)
}

func TestMarkProcessed_ConcurrentDeliveries(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			first, err := st.MarkProcessed(ctx, 555)
			assert.NoError(t, err)
			if first {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins.Load())
}

func TestInsertIfAbsent(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	rec := candidate("Аналитик", "Acme", "Сегодня", models.StatusViewed)

	fresh, err := st.InsertIfAbsent(ctx, 1, rec)
	require.NoError(t, err)
	assert.True(t, fresh)

	dup, err := st.InsertIfAbsent(ctx, 1, rec)
	require.NoError(t, err)
	assert.False(t, dup)

	//same fingerprint for another user is a separate record
	other, err := st.InsertIfAbsent(ctx, 2, rec)
	require.NoError(t, err)
	assert.True(t, other)

	var count int64
	require.NoError(t, st.db.Model(&models.ApplicationRecord{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}
