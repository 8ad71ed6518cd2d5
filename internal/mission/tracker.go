package mission

import (
	"encoding/json"
	"fmt"
)

// Tracker owns the mission catalog and its progress state. It has no
// reference to any ledger; it is driven entirely by the event rules
// (see rules.go) or direct operation calls. Single-goroutine like the
// ledgers, so no locking.
type Tracker struct {
	missions []Mission
	active   string   // mission id, "" = none
	log      []string // completed-missions audit log, append-only

	onChange []func()
}

// NewTracker creates a tracker seeded with the fixed catalog.
func NewTracker() *Tracker {
	return &Tracker{missions: Seed()}
}

// OnChange registers a persistence hook invoked after every mutation.
func (t *Tracker) OnChange(fn func()) {
	t.onChange = append(t.onChange, fn)
}

// SetProgress overwrites a mission's progress and re-derives its
// completed flag. When the flip is false to true, the completion
// effect (progress pinned to total, id appended to the log) runs too,
// so reaching the target by progress and by Complete converge on the
// same end state. Unknown id is a no-op.
func (t *Tracker) SetProgress(id string, progress float64) {
	m := t.find(id)
	if m == nil {
		return
	}
	wasCompleted := m.Completed
	m.Progress = progress
	m.Completed = progress >= float64(m.TotalSteps)
	if m.Completed && !wasCompleted {
		m.Progress = float64(m.TotalSteps)
		t.log = append(t.log, id)
	}
	t.changed()
}

// AddProgress increments a mission's progress, capped at TotalSteps.
func (t *Tracker) AddProgress(id string, delta float64) {
	m := t.find(id)
	if m == nil {
		return
	}
	p := m.Progress + delta
	if p > float64(m.TotalSteps) {
		p = float64(m.TotalSteps)
	}
	t.SetProgress(id, p)
}

// Complete forces a mission into the completed state and appends it to
// the completed log. Calling it again appends again: the log is an
// audit trail, not a set.
func (t *Tracker) Complete(id string) {
	m := t.find(id)
	if m == nil {
		return
	}
	m.Completed = true
	m.Progress = float64(m.TotalSteps)
	t.log = append(t.log, id)
	t.changed()
}

// SetActive sets the single active-mission pointer. Empty id clears
// it. The id is not validated against the catalog.
func (t *Tracker) SetActive(id string) {
	t.active = id
	t.changed()
}

// Active returns the active mission, if any.
func (t *Tracker) Active() (Mission, bool) {
	if t.active == "" {
		return Mission{}, false
	}
	return t.Mission(t.active)
}

// Mission returns a copy of the mission with the given id.
func (t *Tracker) Mission(id string) (Mission, bool) {
	m := t.find(id)
	if m == nil {
		return Mission{}, false
	}
	return *m, true
}

// Missions returns a copy of the catalog in seed order.
func (t *Tracker) Missions() []Mission {
	return append([]Mission(nil), t.missions...)
}

// ByCategory filters missions, preserving catalog order.
func (t *Tracker) ByCategory(c Category) []Mission {
	var out []Mission
	for _, m := range t.missions {
		if m.Category == c {
			out = append(out, m)
		}
	}
	return out
}

// CompletedLog returns a copy of the append-only completion log.
func (t *Tracker) CompletedLog() []string {
	return append([]string(nil), t.log...)
}

// CompletedCount returns how many catalog missions are completed.
func (t *Tracker) CompletedCount() int {
	n := 0
	for _, m := range t.missions {
		if m.Completed {
			n++
		}
	}
	return n
}

// ResetAll restores the seed catalog and clears the active pointer and
// the completed log.
func (t *Tracker) ResetAll() {
	t.missions = Seed()
	t.active = ""
	t.log = nil
	t.changed()
}

// persistedState is the wire format written to the state store.
type persistedState struct {
	Missions          []Mission `json:"missions"`
	ActiveMission     string    `json:"activeMission,omitempty"`
	CompletedMissions []string  `json:"completedMissions"`
}

// StateJSON serializes tracker state for persistence.
func (t *Tracker) StateJSON() ([]byte, error) {
	b, err := json.Marshal(persistedState{
		Missions:          t.missions,
		ActiveMission:     t.active,
		CompletedMissions: t.log,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal mission state: %w", err)
	}
	return b, nil
}

// LoadStateJSON restores progress, the active pointer and the log from
// a persisted snapshot. Progress is copied onto the seed catalog by
// mission id; unknown ids are dropped, and titles/targets always come
// from the seed.
func (t *Tracker) LoadStateJSON(data []byte) error {
	var st persistedState
	if err := json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("unmarshal mission state: %w", err)
	}

	fresh := Seed()
	byID := make(map[string]*Mission, len(fresh))
	for i := range fresh {
		byID[fresh[i].ID] = &fresh[i]
	}
	for _, old := range st.Missions {
		m, ok := byID[old.ID]
		if !ok {
			continue
		}
		m.Progress = old.Progress
		m.Completed = old.Completed || old.Progress >= float64(m.TotalSteps)
	}

	t.missions = fresh
	t.active = st.ActiveMission
	t.log = append([]string(nil), st.CompletedMissions...)
	return nil
}

func (t *Tracker) find(id string) *Mission {
	for i := range t.missions {
		if t.missions[i].ID == id {
			return &t.missions[i]
		}
	}
	return nil
}

func (t *Tracker) changed() {
	for _, fn := range t.onChange {
		fn()
	}
}
