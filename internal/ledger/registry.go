// Package ledger owns the in-memory collections of the logbook: the person
// registry and the transaction ledger. Each collection is the single owner
// of its entities; cross-collection coordination (cascade delete) lives in
// the services layer.
package ledger

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"logbook/internal/core"
)

// Registry is the owning collection of persons. Insertion order is kept but
// carries no meaning.
type Registry struct {
	mu      sync.Mutex
	persons []core.Person
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers a new person with a fresh id.
func (r *Registry) Add(name string) (core.Person, error) {
	p := core.Person{
		ID:   uuid.NewString(),
		Name: strings.TrimSpace(name),
	}
	if err := p.Validate(); err != nil {
		return core.Person{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.persons = append(r.persons, p)
	return p, nil
}

// Rename changes a person's display name. The id is immutable.
func (r *Registry) Rename(id, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return core.ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.persons {
		if r.persons[i].ID == id {
			r.persons[i].Name = newName
			return nil
		}
	}
	return core.ErrNotFound
}

// Remove deletes a person and returns the removed record. Purging the
// transactions that reference the id is the coordinator's job.
func (r *Registry) Remove(id string) (core.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.persons {
		if p.ID == id {
			r.persons = append(r.persons[:i], r.persons[i+1:]...)
			return p, nil
		}
	}
	return core.Person{}, core.ErrNotFound
}

// LookupName resolves a person id to its display name. Unresolvable ids
// yield the Unknown sentinel; LookupName never fails.
func (r *Registry) LookupName(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.persons {
		if p.ID == id {
			return p.Name
		}
	}
	return core.UnknownPersonName
}

// Persons returns a copy of the registry contents.
func (r *Registry) Persons() []core.Person {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]core.Person, len(r.persons))
	copy(out, r.persons)
	return out
}

// Replace swaps the registry contents, used when loading from storage.
func (r *Registry) Replace(persons []core.Person) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.persons = append([]core.Person(nil), persons...)
}

// Len returns the number of registered persons.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.persons)
}
