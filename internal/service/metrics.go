package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var storageOps = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "retail_storage_operations_total",
	Help: "Storage operations by entity, operation and the store that served them.",
}, []string{"entity", "op", "source"})

func observe(entity, op string, src Source) {
	storageOps.WithLabelValues(entity, op, string(src)).Inc()
}
