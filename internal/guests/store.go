// Package guests persists the household guest list in a CSV file.
package guests

import (
	"encoding/csv"
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/mkl159/StockToPlate/pkg/models"
)

var (
	ErrAlreadyExists = errors.New("guest already exists")
	ErrNotFound      = errors.New("guest not found")
)

var header = []string{"name", "unsupported_foods"}

// sameName compares guest names the way lookups do: lower-cased, no further
// Unicode folding or diacritic stripping.
func sameName(a, b string) bool {
	return strings.ToLower(a) == strings.ToLower(b)
}

// Store is a file-backed guest list shared by every chat. Every mutation is
// a full read-modify-write of the CSV, serialized by a single mutex.
type Store struct {
	mu   sync.Mutex
	path string
}

// New opens the store at path, creating the file with its header row when
// it does not exist yet.
func New(path string) (*Store, error) {
	s := &Store{path: path}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := s.write(nil); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	return s, nil
}

// List returns every guest in file order.
func (s *Store) List() ([]models.Guest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Add registers a new guest with no unsupported foods. Names are unique
// case-insensitively; the submitted casing is kept as the display name.
func (s *Store) Add(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	guests, err := s.read()
	if err != nil {
		return err
	}
	for _, g := range guests {
		if sameName(g.Name, name) {
			return ErrAlreadyExists
		}
	}

	guests = append(guests, models.Guest{Name: name})
	return s.write(guests)
}

// Remove deletes the guest matching name case-insensitively.
func (s *Store) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	guests, err := s.read()
	if err != nil {
		return err
	}

	kept := guests[:0]
	for _, g := range guests {
		if !sameName(g.Name, name) {
			kept = append(kept, g)
		}
	}
	if len(kept) == len(guests) {
		return ErrNotFound
	}

	return s.write(kept)
}

// SetUnsupportedFoods replaces the unsupported-food notes of the guest
// matching name case-insensitively.
func (s *Store) SetUnsupportedFoods(name, foods string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	guests, err := s.read()
	if err != nil {
		return err
	}

	found := false
	for i := range guests {
		if sameName(guests[i].Name, name) {
			guests[i].UnsupportedFoods = foods
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound
	}

	return s.write(guests)
}

func (s *Store) read() ([]models.Guest, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}

	var guests []models.Guest
	for i, rec := range records {
		if i == 0 || len(rec) < 2 {
			continue
		}
		guests = append(guests, models.Guest{Name: rec[0], UnsupportedFoods: rec[1]})
	}
	return guests, nil
}

// write rewrites the whole file: header row first, one row per guest.
func (s *Store) write(guests []models.Guest) error {
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, g := range guests {
		if err := w.Write([]string{g.Name, g.UnsupportedFoods}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
