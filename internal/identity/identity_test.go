package identity

import (
	"errors"
	"testing"
)

func TestRegister(t *testing.T) {
	s := NewStore()
	if s.Authenticated() {
		t.Fatal("fresh store reports authenticated")
	}

	u, err := s.Register("  Ana Souza ", "ana@example.com", "feminino")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.ID == "" || u.Token == "" {
		t.Error("register must assign id and token")
	}
	if u.Name != "Ana Souza" {
		t.Errorf("name = %q, want trimmed", u.Name)
	}
	if !s.Authenticated() {
		t.Error("store not authenticated after register")
	}

	got, ok := s.User()
	if !ok || got.Email != "ana@example.com" {
		t.Errorf("user = %+v, %v", got, ok)
	}
}

func TestRegisterValidation(t *testing.T) {
	s := NewStore()

	if _, err := s.Register("", "a@b.com", ""); !errors.Is(err, ErrNameRequired) {
		t.Errorf("empty name error = %v, want ErrNameRequired", err)
	}
	if _, err := s.Register("Ana", "not-an-email", ""); !errors.Is(err, ErrEmailRequired) {
		t.Errorf("bad email error = %v, want ErrEmailRequired", err)
	}
	if s.Authenticated() {
		t.Error("failed registration left the store authenticated")
	}
}

func TestClear(t *testing.T) {
	s := NewStore()
	if _, err := s.Register("Ana", "a@b.com", ""); err != nil {
		t.Fatal(err)
	}
	s.Clear()
	if s.Authenticated() {
		t.Error("store authenticated after clear")
	}
}

func TestStateJSONRoundTrip(t *testing.T) {
	s := NewStore()
	want, err := s.Register("Ana", "a@b.com", "feminino")
	if err != nil {
		t.Fatal(err)
	}

	data, err := s.StateJSON()
	if err != nil {
		t.Fatalf("state json: %v", err)
	}

	restored := NewStore()
	if err := restored.LoadStateJSON(data); err != nil {
		t.Fatalf("load: %v", err)
	}
	got, ok := restored.User()
	if !ok || got != want {
		t.Errorf("restored user = %+v, want %+v", got, want)
	}
}

func TestOnChange(t *testing.T) {
	s := NewStore()
	changes := 0
	s.OnChange(func() { changes++ })

	if _, err := s.Register("Ana", "a@b.com", ""); err != nil {
		t.Fatal(err)
	}
	s.Clear()

	if changes != 2 {
		t.Errorf("change notifications = %d, want 2", changes)
	}
}
