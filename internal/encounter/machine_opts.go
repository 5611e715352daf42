package encounter

type MachineOpt func(*Machine)

// WithConfig replaces the default timing and balance constants.
func WithConfig(cfg Config) MachineOpt {
	return func(m *Machine) {
		m.cfg = cfg
	}
}

// WithStartGate installs a check run before every cast. A non-nil error
// rejects the cast.
func WithStartGate(gate func() error) MachineOpt {
	return func(m *Machine) {
		m.gate = gate
	}
}

// WithHookFunc installs a callback run, without the machine lock, when a
// fish bites and the reaction window opens.
func WithHookFunc(fn func()) MachineOpt {
	return func(m *Machine) {
		m.onHook = fn
	}
}
