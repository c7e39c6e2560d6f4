package sylph

// frame is one level of the two-level environment: the global frame or a
// single call's locals. Call frames do not chain to the global frame; a
// function body sees only its parameters and what it assigns itself.
type frame struct {
	values map[string]Value
}

func newFrame() *frame {
	return &frame{values: make(map[string]Value)}
}

func (f *frame) get(name string) (Value, bool) {
	v, ok := f.values[name]
	return v, ok
}

func (f *frame) set(name string, v Value) {
	f.values[name] = v
}

func (f *frame) names() []string {
	out := make([]string, 0, len(f.values))
	for name := range f.values {
		out = append(out, name)
	}
	return out
}
