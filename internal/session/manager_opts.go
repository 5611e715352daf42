package session

type ManagerOpt func(*Manager)

// WithSeed sets the base seed every session's randomness derives from.
func WithSeed(seed uint64) ManagerOpt {
	return func(m *Manager) {
		m.seed = seed
	}
}

// WithSessionOpts applies opts to every session the manager opens.
func WithSessionOpts(opts ...SessionOpt) ManagerOpt {
	return func(m *Manager) {
		m.opts = append(m.opts, opts...)
	}
}
