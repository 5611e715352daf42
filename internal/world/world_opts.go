package world

type WorldOpt func(*World)

func WithConfig(cfg Config) WorldOpt {
	return func(w *World) {
		w.cfg = cfg
	}
}

// WithStore resumes the world from store and saves it back on shutdown.
func WithStore(store Storer) WorldOpt {
	return func(w *World) {
		w.store = store
	}
}
