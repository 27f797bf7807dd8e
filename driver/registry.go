// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package driver

import (
	"errors"
	"sort"
	"sync"
)

// RegistryEntry represents a registered presentation backend.
type RegistryEntry struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order (higher = preferred).
	// Standard priorities:
	//   - 100: native display-server backends
	//   - 10: headless/in-memory backends
	Priority int

	// Driver is the backend implementation.
	Driver Driver

	// Available reports if the backend can run on this system.
	Available func() bool
}

// globalRegistry is the default registry.
var globalRegistry = &Registry{}

// Registry manages registered presentation backends.
//
// The registry enables backend packages to register themselves via blank
// import without requiring changes to the core library:
//
//	import _ "github.com/gogpu/blitview/driver/shiny"
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// NewRegistry creates a new empty registry.
// Most code should use the global registry via Register and Best.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*RegistryEntry),
	}
}

// Register adds a backend to the global registry.
//
// If available is nil, the backend is assumed always available.
// Registering a name that already exists replaces the previous entry.
func Register(name string, priority int, drv Driver, available func() bool) {
	globalRegistry.Register(name, priority, drv, available)
}

// Unregister removes a backend from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// List returns all registered backend names sorted by priority (highest first).
func List() []string {
	return globalRegistry.List()
}

// Available returns names of all available backends sorted by priority.
func Available() []string {
	return globalRegistry.Available()
}

// Get returns information about a specific backend.
func Get(name string) (*RegistryEntry, bool) {
	return globalRegistry.Get(name)
}

// Best returns the highest-priority available backend.
func Best() (Driver, error) {
	return globalRegistry.Best()
}

// ByName returns a specific backend, checking availability.
func ByName(name string) (Driver, error) {
	return globalRegistry.ByName(name)
}

// Registered returns all registered drivers in priority order, without
// filtering by availability. Used for logger propagation.
func Registered() []Driver {
	return globalRegistry.Registered()
}

// Register adds a backend to this registry.
func (r *Registry) Register(name string, priority int, drv Driver, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[string]*RegistryEntry)
	}

	if available == nil {
		available = func() bool { return true }
	}

	r.entries[name] = &RegistryEntry{
		Name:      name,
		Priority:  priority,
		Driver:    drv,
		Available: available,
	}
}

// Unregister removes a backend from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// List returns all registered backend names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(false)
}

// Available returns names of all available backends sorted by priority.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(true)
}

// Get returns information about a specific backend.
func (r *Registry) Get(name string) (*RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}

	// Return a copy to prevent modification
	entryCopy := *entry
	return &entryCopy, true
}

// Best returns the highest-priority available backend.
func (r *Registry) Best() (Driver, error) {
	r.mu.RLock()
	available := r.sortedNames(true)
	r.mu.RUnlock()

	if len(available) == 0 {
		return nil, ErrNoDriverAvailable
	}
	drv, err := r.ByName(available[0])
	if err != nil {
		return nil, err
	}
	return drv, nil
}

// ByName returns a specific backend, checking availability.
func (r *Registry) ByName(name string) (Driver, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &NotFoundError{Name: name}
	}

	if !entry.Available() {
		return nil, &UnavailableError{Name: name}
	}

	return entry.Driver, nil
}

// Registered returns all registered drivers in priority order.
func (r *Registry) Registered() []Driver {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := r.sortedNames(false)
	drivers := make([]Driver, 0, len(names))
	for _, name := range names {
		drivers = append(drivers, r.entries[name].Driver)
	}
	return drivers
}

// sortedNames returns backend names sorted by priority (highest first).
// If onlyAvailable is true, filters to available backends only.
// Must be called with lock held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	if len(r.entries) == 0 {
		return nil
	}

	type entry struct {
		name     string
		priority int
	}

	entries := make([]entry, 0, len(r.entries))
	for name, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		entries = append(entries, entry{name: name, priority: e.Priority})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].priority > entries[j].priority
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// Errors.
var (
	// ErrNoDriverAvailable is returned when no presentation backends are
	// registered or available on the current system.
	ErrNoDriverAvailable = errors.New("driver: no backend available")

	// ErrConnClosed is returned by operations on a closed connection.
	ErrConnClosed = errors.New("driver: connection closed")

	// ErrSurfaceReleased is returned by operations on a released surface.
	ErrSurfaceReleased = errors.New("driver: surface released")
)

// NotFoundError indicates a named backend is not registered.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return "driver: backend not found: " + e.Name
}

// UnavailableError indicates a backend exists but is not available.
type UnavailableError struct {
	Name string
}

func (e *UnavailableError) Error() string {
	return "driver: backend unavailable: " + e.Name
}
