package guests

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "convives.csv")
	s, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, path
}

func TestNewCreatesFileWithHeader(t *testing.T) {
	_, path := newTestStore(t)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.HasPrefix(string(data), "name,unsupported_foods") {
		t.Errorf("file starts with %q, want header row", string(data))
	}
}

func TestAddAndList(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.Add("Bob"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	guests, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(guests) != 1 {
		t.Fatalf("got %d guests, want 1", len(guests))
	}
	if guests[0].Name != "Bob" || guests[0].UnsupportedFoods != "" {
		t.Errorf("got %+v, want {Bob }", guests[0])
	}
}

func TestAddDuplicateCaseInsensitive(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.Add("Bob"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Add("bob"); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("Add(bob) = %v, want ErrAlreadyExists", err)
	}

	guests, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(guests) != 1 || guests[0].Name != "Bob" {
		t.Errorf("got %+v, want the original casing kept", guests)
	}
}

func TestRemove(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.Add("Ana"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Remove("ANA"); err != nil {
		t.Errorf("Remove(ANA) = %v, want nil", err)
	}

	guests, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(guests) != 0 {
		t.Errorf("got %d guests after remove, want 0", len(guests))
	}

	if err := s.Remove("Ana"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Remove on empty store = %v, want ErrNotFound", err)
	}
}

func TestSetUnsupportedFoods(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.Add("Bob"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.SetUnsupportedFoods("bob", "gluten, lactose"); err != nil {
		t.Fatalf("SetUnsupportedFoods: %v", err)
	}

	guests, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if guests[0].Name != "Bob" {
		t.Errorf("display name = %q, want original casing", guests[0].Name)
	}
	if guests[0].UnsupportedFoods != "gluten, lactose" {
		t.Errorf("foods = %q, want %q", guests[0].UnsupportedFoods, "gluten, lactose")
	}

	if err := s.SetUnsupportedFoods("Eve", "nuts"); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetUnsupportedFoods(Eve) = %v, want ErrNotFound", err)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	s, path := newTestStore(t)

	if err := s.Add("Élodie"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.SetUnsupportedFoods("élodie", "fruits de mer"); err != nil {
		t.Fatalf("SetUnsupportedFoods: %v", err)
	}

	reopened, err := New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	guests, err := reopened.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(guests) != 1 || guests[0].Name != "Élodie" || guests[0].UnsupportedFoods != "fruits de mer" {
		t.Errorf("got %+v after reopen", guests)
	}
}
