package service

import (
	"context"
	"time"
)

type StoreStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
}

type FallbackCounts struct {
	Customers int `json:"customers"`
	Products  int `json:"products"`
	Orders    int `json:"orders"`
	Contracts int `json:"contracts"`
}

type Status struct {
	Stores   []StoreStatus  `json:"stores"`
	Fallback FallbackCounts `json:"fallback"`
}

const probeTimeout = 2 * time.Second

// Status probes each remote store and reports what the fallback store holds.
func (s *Service) Status(ctx context.Context) Status {
	probes := []struct {
		name string
		ping func(context.Context) error
	}{
		{"table", s.repo.Tables.Ping},
		{"blob", s.repo.Blobs.Ping},
		{"fileshare", s.repo.Contracts.Ping},
	}

	st := Status{Stores: make([]StoreStatus, 0, len(probes))}
	for _, p := range probes {
		pctx, cancel := context.WithTimeout(ctx, probeTimeout)
		err := p.ping(pctx)
		cancel()

		ss := StoreStatus{Name: p.name, Available: err == nil}
		if err != nil {
			ss.Error = err.Error()
		}
		st.Stores = append(st.Stores, ss)
	}

	fb := s.repo.Fallback
	st.Fallback = FallbackCounts{
		Customers: fb.Customers.Len(),
		Products:  fb.Products.Len(),
		Orders:    fb.Orders.Len(),
		Contracts: fb.Contracts.Len(),
	}
	return st
}
