// Package identity holds the registered user profile. Registration is
// local-only: there is no server, so the "session" is a generated id
// and a fixed token, persisted like every other store.
package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// User is the registered profile attached to submission payloads.
type User struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Gender string `json:"gender"`
	Token  string `json:"token,omitempty"`
}

// localToken marks a session created by local registration.
const localToken = "local-session-token"

var (
	ErrNameRequired  = errors.New("name is required")
	ErrEmailRequired = errors.New("a valid email is required")
)

// Store holds the current session identity.
type Store struct {
	user     *User
	onChange []func()
}

// NewStore creates an empty, unauthenticated identity store.
func NewStore() *Store {
	return &Store{}
}

// OnChange registers a persistence hook invoked after every mutation.
func (s *Store) OnChange(fn func()) {
	s.onChange = append(s.onChange, fn)
}

// Register creates the local user session. Name and a plausible email
// are required; gender is free-form and optional.
func (s *Store) Register(name, email, gender string) (User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return User{}, ErrNameRequired
	}
	if !strings.Contains(email, "@") {
		return User{}, ErrEmailRequired
	}

	u := User{
		ID:     uuid.NewString(),
		Name:   name,
		Email:  email,
		Gender: strings.TrimSpace(gender),
		Token:  localToken,
	}
	s.user = &u
	s.changed()
	return u, nil
}

// Authenticated reports whether a user is registered.
func (s *Store) Authenticated() bool {
	return s.user != nil
}

// User returns the registered user, if any.
func (s *Store) User() (User, bool) {
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// Clear drops the session.
func (s *Store) Clear() {
	s.user = nil
	s.changed()
}

// persistedState is the wire format written to the state store.
type persistedState struct {
	User            *User `json:"user"`
	IsAuthenticated bool  `json:"isAuthenticated"`
}

// StateJSON serializes the session for persistence.
func (s *Store) StateJSON() ([]byte, error) {
	b, err := json.Marshal(persistedState{
		User:            s.user,
		IsAuthenticated: s.user != nil,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal identity state: %w", err)
	}
	return b, nil
}

// LoadStateJSON restores the session from a persisted snapshot.
func (s *Store) LoadStateJSON(data []byte) error {
	var st persistedState
	if err := json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("unmarshal identity state: %w", err)
	}
	if st.IsAuthenticated && st.User != nil {
		u := *st.User
		s.user = &u
	} else {
		s.user = nil
	}
	return nil
}

func (s *Store) changed() {
	for _, fn := range s.onChange {
		fn()
	}
}
