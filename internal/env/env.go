package env

// Emummc reports the emulated-storage state the service was configured
// with. On the original hardware this is probed from the running system; a
// host-side deployment supplies it through configuration instead.
type Emummc struct {
	Active bool
	ID     uint32
}

// NewEmummc creates a detector with the given state.
func NewEmummc(active bool, id uint32) *Emummc {
	return &Emummc{Active: active, ID: id}
}

// IsActive reports whether emulated storage is in use.
func (e *Emummc) IsActive() bool {
	return e.Active
}

// ActiveID returns the numeric id of the active emulated-storage unit.
func (e *Emummc) ActiveID() uint32 {
	return e.ID
}
