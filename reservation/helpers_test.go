package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"upc-cli/storage"
)

var today = time.Date(2025, 9, 19, 15, 30, 0, 0, time.UTC)

type mapKV struct {
	values map[string]string
	fail   bool
}

func newMapKV() *mapKV {
	return &mapKV{values: map[string]string{}}
}

func (m *mapKV) Get(_ context.Context, key string) (string, bool, error) {
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *mapKV) Set(_ context.Context, key, value string) error {
	if m.fail {
		return errors.New("device storage unavailable")
	}
	m.values[key] = value
	return nil
}

func newStore(kv *mapKV) *storage.ReservationStore {
	return storage.NewReservationStore(kv, nil)
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}
