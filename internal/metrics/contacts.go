package metrics

import (
	"github.com/san-kum/plinko/internal/sim"
	"github.com/san-kum/plinko/internal/world"
)

// Contacts counts the contact pairs that started during the run.
type Contacts struct {
	name  string
	count int
}

func NewContacts() *Contacts {
	return &Contacts{name: "contacts"}
}

func (c *Contacts) Name() string { return c.name }

func (c *Contacts) Observe(f sim.Frame, w *world.World) {
	c.count += f.Started
}

func (c *Contacts) Value() float64 { return float64(c.count) }

func (c *Contacts) Reset() { c.count = 0 }
