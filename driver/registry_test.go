// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package driver

import (
	"errors"
	"testing"
)

// fakeDriver is a minimal Driver for registry tests.
type fakeDriver struct {
	name      string
	singleton bool
}

func (f *fakeDriver) Name() string               { return f.name }
func (f *fakeDriver) Singleton() bool            { return f.singleton }
func (f *fakeDriver) Open(Options) (Conn, error) { return nil, errors.New("fake") }

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	drv := &fakeDriver{name: "test"}
	r.Register("test", 50, drv, nil)

	entry, ok := r.Get("test")
	if !ok {
		t.Fatal("Get() returned false for registered backend")
	}
	if entry.Name != "test" || entry.Priority != 50 {
		t.Errorf("entry = %+v, want name=test priority=50", entry)
	}
	if !entry.Available() {
		t.Error("nil available func should mean always available")
	}
}

func TestRegistryPriorityOrder(t *testing.T) {
	r := NewRegistry()
	r.Register("low", 10, &fakeDriver{name: "low"}, nil)
	r.Register("high", 100, &fakeDriver{name: "high"}, nil)
	r.Register("mid", 50, &fakeDriver{name: "mid"}, nil)

	got := r.List()
	want := []string{"high", "mid", "low"}
	if len(got) != len(want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRegistryBest(t *testing.T) {
	r := NewRegistry()
	high := &fakeDriver{name: "high"}
	r.Register("low", 10, &fakeDriver{name: "low"}, nil)
	r.Register("high", 100, high, nil)

	drv, err := r.Best()
	if err != nil {
		t.Fatalf("Best() error = %v", err)
	}
	if drv.Name() != high.Name() {
		t.Errorf("Best() = %q, want high-priority backend", drv.Name())
	}
}

func TestRegistryBestSkipsUnavailable(t *testing.T) {
	r := NewRegistry()
	low := &fakeDriver{name: "low"}
	r.Register("low", 10, low, nil)
	r.Register("high", 100, &fakeDriver{name: "high"}, func() bool { return false })

	drv, err := r.Best()
	if err != nil {
		t.Fatalf("Best() error = %v", err)
	}
	if drv.Name() != "low" {
		t.Errorf("Best() = %q, want low (high unavailable)", drv.Name())
	}
}

func TestRegistryBestEmpty(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Best(); !errors.Is(err, ErrNoDriverAvailable) {
		t.Errorf("Best() error = %v, want ErrNoDriverAvailable", err)
	}
}

func TestRegistryByName(t *testing.T) {
	r := NewRegistry()
	r.Register("test", 50, &fakeDriver{name: "test"}, nil)

	if _, err := r.ByName("test"); err != nil {
		t.Errorf("ByName(test) error = %v", err)
	}

	_, err := r.ByName("missing")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("ByName(missing) error = %v, want *NotFoundError", err)
	}
}

func TestRegistryByNameUnavailable(t *testing.T) {
	r := NewRegistry()
	r.Register("test", 50, &fakeDriver{name: "test"}, func() bool { return false })

	_, err := r.ByName("test")
	var unavailable *UnavailableError
	if !errors.As(err, &unavailable) {
		t.Errorf("ByName() error = %v, want *UnavailableError", err)
	}
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register("test", 50, &fakeDriver{name: "test"}, nil)
	r.Unregister("test")

	if _, ok := r.Get("test"); ok {
		t.Error("Get() found backend after Unregister")
	}
}

func TestRegistryRegistered(t *testing.T) {
	r := NewRegistry()
	r.Register("a", 10, &fakeDriver{name: "a"}, func() bool { return false })
	r.Register("b", 20, &fakeDriver{name: "b"}, nil)

	drivers := r.Registered()
	if len(drivers) != 2 {
		t.Fatalf("Registered() returned %d drivers, want 2 (availability ignored)", len(drivers))
	}
	if drivers[0].Name() != "b" {
		t.Errorf("Registered()[0] = %q, want b (priority order)", drivers[0].Name())
	}
}

func TestOptionsPixelFormatDefault(t *testing.T) {
	var o Options
	if got := o.PixelFormat(); got == 0 {
		t.Error("PixelFormat() zero value should default to a concrete format")
	}
}

func TestEventKindString(t *testing.T) {
	cases := []struct {
		kind EventKind
		want string
	}{
		{EventResized, "Resized"},
		{EventCloseRequested, "CloseRequested"},
		{EventDestroyed, "Destroyed"},
		{EventKeyboardInput, "KeyboardInput"},
		{EventKind(200), "Unknown"},
	}
	for _, tc := range cases {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("EventKind(%d).String() = %q, want %q", tc.kind, got, tc.want)
		}
	}
}
