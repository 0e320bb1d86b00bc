package stream

// Maybe holds either a descriptor or nothing. Nothing means there is no
// sound to produce, e.g. a required input is not connected. It's not an
// error.
type Maybe struct {
	d  Descriptor
	ok bool
}

// None returns a Maybe without descriptor.
func None() Maybe {
	return Maybe{}
}

// Some wraps a descriptor.
func Some(d Descriptor) Maybe {
	return Maybe{d: d, ok: true}
}

// Get returns the descriptor and true if it's present.
func (m Maybe) Get() (Descriptor, bool) {
	return m.d, m.ok
}

// IsNone reports if there is no descriptor.
func (m Maybe) IsNone() bool {
	return !m.ok
}

func (m Maybe) String() string {
	if !m.ok {
		return "none"
	}
	return m.d.String()
}
