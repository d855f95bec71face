package printer

import (
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"
)

const (
	dialTimeout  = 5 * time.Second
	writeTimeout = 10 * time.Second
)

// NetworkPrinter is a raw TCP (port 9100) thermal printer.
type NetworkPrinter struct {
	id         string
	name       string
	addr       string
	paperWidth int
	mu         sync.Mutex
}

// NewNetworkPrinter creates a printer from its config entry.
func NewNetworkPrinter(cfg PrinterConfig) *NetworkPrinter {
	return &NetworkPrinter{
		id:         cfg.ID,
		name:       cfg.Name,
		addr:       net.JoinHostPort(cfg.Address, strconv.Itoa(cfg.Port)),
		paperWidth: cfg.PaperWidth,
	}
}

func (p *NetworkPrinter) ID() string      { return p.id }
func (p *NetworkPrinter) Name() string    { return p.name }
func (p *NetworkPrinter) PaperWidth() int { return p.paperWidth }

// Status dials the printer and reports "online" or "offline".
func (p *NetworkPrinter) Status() string {
	conn, err := net.DialTimeout("tcp", p.addr, 2*time.Second)
	if err != nil {
		return "offline"
	}
	_ = conn.Close()
	return "online"
}

// Print sends one job over a fresh connection. Jobs to the same printer
// are serialised.
func (p *NetworkPrinter) Print(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	conn, err := net.DialTimeout("tcp", p.addr, dialTimeout)
	if err != nil {
		return fmt.Errorf("connect to printer %s: %w", p.id, err)
	}
	defer conn.Close()

	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("send to printer %s: %w", p.id, err)
	}
	return nil
}
