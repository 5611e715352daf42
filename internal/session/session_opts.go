package session

import (
	"github.com/pixil98/go-fishery/internal/encounter"
	"github.com/pixil98/go-fishery/internal/events"
	"github.com/pixil98/go-fishery/internal/inventory"
)

type SessionOpt func(*Session)

func WithSink(sink events.Sink) SessionOpt {
	return func(s *Session) {
		s.sink = sink
	}
}

func WithEncounterConfig(cfg encounter.Config) SessionOpt {
	return func(s *Session) {
		s.encounterCfg = cfg
	}
}

func WithSaleConfig(cfg inventory.SaleConfig) SessionOpt {
	return func(s *Session) {
		s.saleCfg = cfg
	}
}

func WithCustomerConfig(cfg CustomerConfig) SessionOpt {
	return func(s *Session) {
		s.customerCfg = cfg
	}
}
