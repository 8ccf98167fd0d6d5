package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/courtify/courtify/internal/domain"
)

// Store is the append-only booking ledger. Records are returned in creation
// order; there is no update or delete.
type Store interface {
	Append(ctx context.Context, booking domain.Booking) error
	List(ctx context.Context) ([]domain.Booking, error)
}

// FileStore keeps the ledger as one JSON array on disk. The whole
// load-append-store sequence runs under a single mutex so concurrent
// creations cannot lose writes.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Append(ctx context.Context, booking domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings := s.load()
	bookings = append(bookings, booking)

	data, err := json.MarshalIndent(bookings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode bookings: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write bookings file: %w", err)
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

// load reads the whole ledger. A missing or unreadable file is treated as an
// empty ledger rather than an error.
func (s *FileStore) load() []domain.Booking {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return []domain.Booking{}
	}
	var bookings []domain.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		return []domain.Booking{}
	}
	return bookings
}

var _ Store = (*FileStore)(nil)
