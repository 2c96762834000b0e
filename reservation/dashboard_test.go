package reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"upc-cli/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func always(answer bool) ConfirmFunc {
	return func(string) (bool, error) { return answer, nil }
}

func newTestDashboard(store *storage.ReservationStore) *Dashboard {
	return NewDashboard(store, DefaultCatalog(), func() time.Time { return today })
}

func TestDashboardEmpty(t *testing.T) {
	d := newTestDashboard(newStore(newMapKV()))
	assert.Empty(t, d.Focus(context.Background()))
	assert.True(t, d.Empty())
	assert.NotEmpty(t, EmptyMessage)
}

func TestDashboardEntries(t *testing.T) {
	d := newTestDashboard(newStore(newMapKV()))
	entries := d.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, storage.CategorySports, entries[0].Category)
	assert.Equal(t, storage.CategoryLaboratory, entries[1].Category)

	for _, entry := range entries {
		form, err := d.Start(entry.Category)
		require.NoError(t, err)
		assert.Equal(t, entry.Category, form.Category())
		assert.Equal(t, "19/09/2025", form.DateLabel())
	}
}

func TestReservationScenario(t *testing.T) {
	ctx := context.Background()
	store := newStore(newMapKV())
	d := newTestDashboard(store)

	d.Focus(ctx)
	require.True(t, d.Empty())

	form, err := d.Start(storage.CategorySports)
	require.NoError(t, err)
	require.NoError(t, form.SelectCampus("Monterrico"))
	require.NoError(t, form.SelectSpace("Espacio deportivos/Losa 1"))
	intent, err := form.Submit()
	require.NoError(t, err)

	p := NewPresenter(intent, StaticAvailability(DefaultAvailableHours), store,
		WithClock(func() time.Time { return today }))
	require.True(t, p.Select("08:00"))
	created, err := p.Reserve(ctx)
	require.NoError(t, err)

	records := d.Focus(ctx)
	require.Len(t, records, 1)
	got := records[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, storage.CategorySports, got.Category)
	assert.Equal(t, "Monterrico", got.Campus)
	assert.Equal(t, "Espacio deportivos/Losa 1", got.SpaceType)
	assert.Equal(t, "19/09/2025", got.Date)
	assert.Equal(t, "08:00", got.Hour)
	assert.False(t, d.Empty())
}

func seedTwo(t *testing.T, store *storage.ReservationStore) {
	t.Helper()
	ctx := context.Background()
	older := storage.Reservation{ID: "older", Category: storage.CategoryLaboratory, Campus: "Villa",
		SpaceType: "Laboratorio de Física", Date: "20/09/2025", Hour: "12:00", CreatedAt: "2025-09-19T10:00:00.000Z"}
	newer := storage.Reservation{ID: "newer", Category: storage.CategorySports, Campus: "Monterrico",
		SpaceType: "Espacio deportivos/Losa 2", Date: "21/09/2025", Hour: "21:00", CreatedAt: "2025-09-19T11:00:00.000Z"}
	require.NoError(t, store.Append(ctx, older))
	require.NoError(t, store.Append(ctx, newer))
}

func TestDashboardDelete(t *testing.T) {
	ctx := context.Background()
	store := newStore(newMapKV())
	seedTwo(t, store)
	d := newTestDashboard(store)

	records := d.Focus(ctx)
	assert.Equal(t, "newer", records[0].ID)
	assert.Equal(t, "older", records[1].ID)

	var prompt string
	removed, err := d.Delete(ctx, "older", ConfirmFunc(func(p string) (bool, error) {
		prompt = p
		return true, nil
	}))
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Contains(t, prompt, "Villa · Laboratorio de Física · 20/09/2025 12:00")

	remaining := store.Load(ctx)
	require.Len(t, remaining, 1)
	assert.Equal(t, "newer", remaining[0].ID)
	assert.Equal(t, remaining, d.Records())
}

func TestDashboardDeleteDeclined(t *testing.T) {
	ctx := context.Background()
	store := newStore(newMapKV())
	seedTwo(t, store)
	d := newTestDashboard(store)
	d.Focus(ctx)

	removed, err := d.Delete(ctx, "older", always(false))
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Len(t, store.Load(ctx), 2)
}

func TestDashboardDeleteConfirmError(t *testing.T) {
	ctx := context.Background()
	store := newStore(newMapKV())
	seedTwo(t, store)
	d := newTestDashboard(store)

	boom := errors.New("no terminal")
	_, err := d.Delete(ctx, "older", ConfirmFunc(func(string) (bool, error) { return false, boom }))
	require.ErrorIs(t, err, boom)
	assert.Len(t, store.Load(ctx), 2)
}

func TestDashboardDeleteUnknownID(t *testing.T) {
	ctx := context.Background()
	store := newStore(newMapKV())
	seedTwo(t, store)
	d := newTestDashboard(store)
	d.Focus(ctx)

	asked := false
	removed, err := d.Delete(ctx, "missing", ConfirmFunc(func(string) (bool, error) {
		asked = true
		return true, nil
	}))
	require.NoError(t, err)
	assert.False(t, removed)
	assert.False(t, asked)
	assert.Len(t, d.Records(), 2)
	assert.Len(t, store.Load(ctx), 2)
}

func TestDashboardDeleteBeforeFocus(t *testing.T) {
	ctx := context.Background()
	store := newStore(newMapKV())
	seedTwo(t, store)
	d := newTestDashboard(store)

	removed, err := d.Delete(ctx, "older", always(true))
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Len(t, store.Load(ctx), 1)
}

func TestDashboardFocusSeesExternalChanges(t *testing.T) {
	ctx := context.Background()
	kv := newMapKV()
	store := newStore(kv)
	seedTwo(t, store)
	d := newTestDashboard(store)
	require.Len(t, d.Focus(ctx), 2)

	other := newStore(kv)
	require.NoError(t, other.Remove(ctx, "newer"))

	records := d.Focus(ctx)
	require.Len(t, records, 1)
	assert.Equal(t, "older", records[0].ID)
}
