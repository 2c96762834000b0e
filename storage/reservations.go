package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"upc-cli/logger"
)

// ReservationsKey is the device storage entry holding the whole collection.
const ReservationsKey = "reservations"

const (
	DateLayout      = "02/01/2006"
	HourLayout      = "15:04"
	CreatedAtLayout = "2006-01-02T15:04:05.000Z07:00"
)

var (
	ErrDuplicateID     = errors.New("reservation id already exists")
	ErrUnknownCategory = errors.New("unknown reservation category")
)

type Category string

const (
	CategorySports     Category = "deportivo"
	CategoryLaboratory Category = "laboratorio"
)

// Categories lists the reservation families in display order.
func Categories() []Category {
	return []Category{CategorySports, CategoryLaboratory}
}

// ParseCategory accepts the stored value or its English name.
func ParseCategory(input string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "deportivo", "sports", "sport":
		return CategorySports, nil
	case "laboratorio", "laboratory", "lab":
		return CategoryLaboratory, nil
	}
	return "", fmt.Errorf("%w: %q (expected sports or laboratory)", ErrUnknownCategory, input)
}

func (c Category) Valid() bool {
	return c == CategorySports || c == CategoryLaboratory
}

func (c Category) String() string {
	return string(c)
}

// Reservation is one persisted booking. Records are never updated in place.
type Reservation struct {
	ID        string   `json:"id" csv:"id"`
	Category  Category `json:"type" csv:"type"`
	Campus    string   `json:"campus" csv:"campus"`
	SpaceType string   `json:"spaceType" csv:"space_type"`
	Date      string   `json:"date" csv:"date"`
	Hour      string   `json:"hour" csv:"hour"`
	CreatedAt string   `json:"createdAt" csv:"created_at"`
}

// CreatedTime parses CreatedAt, returning the zero time when it is malformed.
func (r Reservation) CreatedTime() time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// SortNewestFirst orders records by creation time, most recent first.
func SortNewestFirst(records []Reservation) {
	sort.SliceStable(records, func(i, j int) bool {
		ti, tj := records[i].CreatedTime(), records[j].CreatedTime()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return records[i].ID > records[j].ID
	})
}

// KeyValue is the subset of device storage the reservation store needs.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// ReservationStore keeps the reservation collection in memory and writes it
// back to a single device storage entry on every mutation. It assumes a
// single writer and is not safe for concurrent use.
type ReservationStore struct {
	kv    KeyValue
	log   *logger.Logger
	cache []Reservation
}

func NewReservationStore(kv KeyValue, log *logger.Logger) *ReservationStore {
	if log == nil {
		log = logger.Discard()
	}
	return &ReservationStore{kv: kv, log: log}
}

// Load re-reads the collection from device storage. A missing entry, a read
// failure or an undecodable payload all yield an empty collection.
func (s *ReservationStore) Load(ctx context.Context) []Reservation {
	records, err := s.read(ctx)
	if err != nil {
		s.log.Warn("reservations unreadable, treating as empty", logger.Key(ReservationsKey), logger.Error(err))
		s.cache = nil
		return []Reservation{}
	}
	s.cache = records

	out := cloneReservations(records)
	SortNewestFirst(out)
	return out
}

// Append re-reads the collection, adds r and flushes it. The id must be
// unused.
func (s *ReservationStore) Append(ctx context.Context, r Reservation) error {
	if err := s.refresh(ctx); err != nil {
		s.log.Error("append reservation", logger.Reservation(r.ID), logger.Error(err))
		return err
	}
	for _, existing := range s.cache {
		if existing.ID == r.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateID, r.ID)
		}
	}

	previous := s.cache
	s.cache = append(cloneReservations(previous), r)
	if err := s.Flush(ctx); err != nil {
		s.cache = previous
		s.log.Error("append reservation", logger.Reservation(r.ID), logger.Error(err))
		return err
	}
	s.log.Debug("reservation appended", logger.Reservation(r.ID), logger.Count(len(s.cache)))
	return nil
}

// Remove re-reads the collection and deletes the record with id. An unknown
// id is a no-op.
func (s *ReservationStore) Remove(ctx context.Context, id string) error {
	if err := s.refresh(ctx); err != nil {
		s.log.Error("remove reservation", logger.Reservation(id), logger.Error(err))
		return err
	}

	remaining := make([]Reservation, 0, len(s.cache))
	for _, record := range s.cache {
		if record.ID != id {
			remaining = append(remaining, record)
		}
	}
	if len(remaining) == len(s.cache) {
		return nil
	}

	previous := s.cache
	s.cache = remaining
	if err := s.Flush(ctx); err != nil {
		s.cache = previous
		s.log.Error("remove reservation", logger.Reservation(id), logger.Error(err))
		return err
	}
	s.log.Debug("reservation removed", logger.Reservation(id), logger.Count(len(s.cache)))
	return nil
}

// Flush writes the cached collection to device storage.
func (s *ReservationStore) Flush(ctx context.Context) error {
	records := s.cache
	if records == nil {
		records = []Reservation{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode reservations: %w", err)
	}
	return s.kv.Set(ctx, ReservationsKey, string(payload))
}

// refresh replaces the cache with the stored collection so mutations apply
// to what is on the device, not to a stale copy.
func (s *ReservationStore) refresh(ctx context.Context) error {
	records, err := s.read(ctx)
	if err != nil {
		return err
	}
	s.cache = records
	return nil
}

func (s *ReservationStore) read(ctx context.Context) ([]Reservation, error) {
	raw, ok, err := s.kv.Get(ctx, ReservationsKey)
	if err != nil {
		return nil, err
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []Reservation{}, nil
	}

	var records []Reservation
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("decode reservations: %w", err)
	}
	if records == nil {
		records = []Reservation{}
	}
	for _, r := range records {
		if r.CreatedTime().IsZero() {
			s.log.Debug("reservation has malformed createdAt, sorting it last",
				logger.Reservation(r.ID), logger.F("CREATED_AT", r.CreatedAt))
		}
	}
	return records, nil
}

func cloneReservations(records []Reservation) []Reservation {
	out := make([]Reservation, len(records))
	copy(out, records)
	return out
}
