// Package printer drives the ESC/POS receipt printers declared in the
// printer inventory file.
package printer

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownPrinter is returned for an id the inventory does not declare.
var ErrUnknownPrinter = errors.New("printer: unknown printer")

// Printer is a thermal printer.
type Printer interface {
	ID() string
	Name() string
	PaperWidth() int
	Status() string
	Print(data []byte) error
}

// Manager holds printers by id.
type Manager struct {
	printers map[string]Printer
}

// NewManager builds a manager over printers.
func NewManager(printers ...Printer) *Manager {
	m := &Manager{printers: make(map[string]Printer, len(printers))}
	for _, p := range printers {
		m.Add(p)
	}
	return m
}

// FromConfig builds network printers for every inventory entry.
func FromConfig(cfg *Config) *Manager {
	m := NewManager()
	if cfg == nil {
		return m
	}
	for _, pc := range cfg.Printers {
		m.Add(NewNetworkPrinter(pc))
	}
	return m
}

// Add registers p, replacing any printer with the same id.
func (m *Manager) Add(p Printer) {
	m.printers[p.ID()] = p
}

// Get looks a printer up by id.
func (m *Manager) Get(id string) (Printer, error) {
	p, ok := m.printers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPrinter, id)
	}
	return p, nil
}

// IDs lists the registered printer ids in order.
func (m *Manager) IDs() []string {
	ids := make([]string, 0, len(m.printers))
	for id := range m.printers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
