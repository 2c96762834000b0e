package reservation

import (
	"context"
	"fmt"
	"time"

	"upc-cli/storage"
)

const EmptyMessage = "Aún no tienes reservas. Reserva un espacio deportivo o un laboratorio para verlo aquí."

// Repository is what the dashboard reads from and deletes through.
type Repository interface {
	Load(ctx context.Context) []storage.Reservation
	Remove(ctx context.Context, id string) error
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

type ConfirmFunc func(prompt string) (bool, error)

func (f ConfirmFunc) Confirm(prompt string) (bool, error) {
	return f(prompt)
}

// Dashboard lists the stored reservations and is the entry to the form.
type Dashboard struct {
	repo    Repository
	catalog Catalog
	now     func() time.Time
	records []storage.Reservation
}

func NewDashboard(repo Repository, catalog Catalog, now func() time.Time) *Dashboard {
	if now == nil {
		now = time.Now
	}
	return &Dashboard{repo: repo, catalog: catalog, now: now}
}

// Focus reloads the reservations; call it every time the view is shown.
func (d *Dashboard) Focus(ctx context.Context) []storage.Reservation {
	records := d.repo.Load(ctx)
	storage.SortNewestFirst(records)
	d.records = records
	return d.Records()
}

func (d *Dashboard) Records() []storage.Reservation {
	out := make([]storage.Reservation, len(d.records))
	copy(out, d.records)
	return out
}

func (d *Dashboard) Empty() bool {
	return len(d.records) == 0
}

func (d *Dashboard) Find(id string) (storage.Reservation, bool) {
	for _, record := range d.records {
		if record.ID == id {
			return record, true
		}
	}
	return storage.Reservation{}, false
}

// Delete removes id after the confirmer approves. It reports whether the
// removal was carried out; an id that is not stored is never removed and the
// confirmer is not asked.
func (d *Dashboard) Delete(ctx context.Context, id string, confirm Confirmer) (bool, error) {
	record, found := d.Find(id)
	if !found {
		d.Focus(ctx)
		if record, found = d.Find(id); !found {
			return false, nil
		}
	}

	ok, err := confirm.Confirm(fmt.Sprintf("¿Eliminar la reserva %s?", Describe(record)))
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	if err := d.repo.Remove(ctx, id); err != nil {
		return false, err
	}
	d.Focus(ctx)
	return true, nil
}

func (d *Dashboard) Entries() []Entry {
	return Entries()
}

// Start opens a new form with category preset.
func (d *Dashboard) Start(category storage.Category) (*Form, error) {
	return NewForm(category, d.catalog, d.now())
}

// Describe renders a reservation on one line.
func Describe(r storage.Reservation) string {
	return fmt.Sprintf("%s · %s · %s %s", r.Campus, r.SpaceType, r.Date, r.Hour)
}
