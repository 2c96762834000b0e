package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"upc-cli/logger"
	"upc-cli/storage"

	"github.com/google/uuid"
)

// DefaultReturnDelay is how long the success acknowledgment stays up before
// the dashboard is shown again.
const DefaultReturnDelay = 2 * time.Second

const SuccessMessage = "¡Reserva exitosa!"

var (
	ErrNoSelection     = errors.New("no hour selected")
	ErrSlotUnavailable = errors.New("hour is not available")
	ErrAlreadyReserved = errors.New("reservation already confirmed")
)

// DefaultAvailableHours is the fixed subset of the schedule offered for
// booking, independent of existing reservations.
var DefaultAvailableHours = []string{"08:00", "12:00", "21:00"}

// DailySchedule returns the hourly slots 06:00 to 22:00.
func DailySchedule() []string {
	hours := make([]string, 0, 17)
	for h := 6; h <= 22; h++ {
		hours = append(hours, fmt.Sprintf("%02d:00", h))
	}
	return hours
}

// Availability decides which hours of the schedule can be booked for intent.
type Availability interface {
	AvailableHours(intent Intent) []string
}

// StaticAvailability offers the same hours for every date and space.
type StaticAvailability []string

func (s StaticAvailability) AvailableHours(Intent) []string {
	return s
}

// Appender persists a new reservation.
type Appender interface {
	Append(ctx context.Context, r storage.Reservation) error
}

type Slot struct {
	Hour      string `json:"hour"`
	Available bool   `json:"available"`
	Selected  bool   `json:"selected"`
}

// Presenter shows the hour grid for an intent and turns a confirmed selection
// into a stored reservation.
type Presenter struct {
	intent    Intent
	schedule  []string
	available map[string]bool
	selected  string
	reserved  bool

	store Appender
	log   *logger.Logger
	now   func() time.Time
	newID func() string
}

type Option func(*Presenter)

func WithClock(now func() time.Time) Option {
	return func(p *Presenter) { p.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(p *Presenter) { p.newID = newID }
}

func WithLogger(log *logger.Logger) Option {
	return func(p *Presenter) { p.log = log }
}

func WithSchedule(hours []string) Option {
	return func(p *Presenter) { p.schedule = hours }
}

func NewPresenter(intent Intent, availability Availability, store Appender, opts ...Option) *Presenter {
	p := &Presenter{
		intent:   intent,
		schedule: DailySchedule(),
		store:    store,
		log:      logger.Discard(),
		now:      time.Now,
		newID:    newReservationID,
	}
	for _, opt := range opts {
		opt(p)
	}

	offered := map[string]bool{}
	for _, hour := range availability.AvailableHours(intent) {
		offered[hour] = true
	}
	p.available = map[string]bool{}
	for _, hour := range p.schedule {
		if offered[hour] {
			p.available[hour] = true
		}
	}
	return p
}

func (p *Presenter) Intent() Intent { return p.intent }

// Slots returns the whole schedule in order with availability and selection.
func (p *Presenter) Slots() []Slot {
	slots := make([]Slot, 0, len(p.schedule))
	for _, hour := range p.schedule {
		slots = append(slots, Slot{
			Hour:      hour,
			Available: p.available[hour],
			Selected:  hour == p.selected,
		})
	}
	return slots
}

// AvailableHours lists the selectable hours in schedule order.
func (p *Presenter) AvailableHours() []string {
	hours := []string{}
	for _, hour := range p.schedule {
		if p.available[hour] {
			hours = append(hours, hour)
		}
	}
	return hours
}

// Select makes hour the current selection. Hours that are not available are
// ignored and false is returned.
func (p *Presenter) Select(hour string) bool {
	if p.reserved || !p.available[hour] {
		return false
	}
	p.selected = hour
	return true
}

func (p *Presenter) Selected() (string, bool) {
	return p.selected, p.selected != ""
}

func (p *Presenter) CanReserve() bool {
	return !p.reserved && p.selected != ""
}

// Reserve stores a reservation for the selected hour. A failed write keeps the
// selection so the user can confirm again.
func (p *Presenter) Reserve(ctx context.Context) (storage.Reservation, error) {
	if p.reserved {
		return storage.Reservation{}, ErrAlreadyReserved
	}
	if p.selected == "" {
		return storage.Reservation{}, ErrNoSelection
	}
	if !p.available[p.selected] {
		return storage.Reservation{}, fmt.Errorf("%w: %s", ErrSlotUnavailable, p.selected)
	}

	record := storage.Reservation{
		ID:        p.newID(),
		Category:  p.intent.Category,
		Campus:    p.intent.Campus,
		SpaceType: p.intent.SpaceType,
		Date:      p.intent.DateLabel(),
		Hour:      p.selected,
		CreatedAt: p.now().UTC().Format(storage.CreatedAtLayout),
	}

	if err := p.store.Append(ctx, record); err != nil {
		p.log.Error("save reservation failed",
			logger.Action("reserve"),
			logger.Category(record.Category.String()),
			logger.Hour(record.Hour),
			logger.Error(err))
		return storage.Reservation{}, fmt.Errorf("save reservation: %w", err)
	}

	p.reserved = true
	p.log.Info("reservation created",
		logger.Action("reserve"),
		logger.Reservation(record.ID),
		logger.Category(record.Category.String()),
		logger.Hour(record.Hour))
	return record, nil
}

// WaitReturn blocks for d or until ctx is done.
func WaitReturn(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func newReservationID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
