// internal/utils/metrics/collector.go
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "raydium_swap"

// Статусы транзакции
const (
	StatusSuccess   = "success"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// Collector хранит метрики одного запуска в собственном реестре.
type Collector struct {
	registry *prometheus.Registry

	transactionCounter  *prometheus.CounterVec
	transactionDuration *prometheus.HistogramVec
	rpcLatency          *prometheus.HistogramVec
	lamports            *prometheus.GaugeVec
}

// NewCollector создает новый экземпляр коллектора метрик
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),

		transactionCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transactions_total",
				Help:      "Total number of transactions processed",
			},
			[]string{"status", "mode"},
		),
		transactionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "transaction_duration_seconds",
				Help:      "Time from assembly to confirmation or simulation",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
			},
			[]string{"mode"},
		),
		rpcLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "rpc_latency_seconds",
				Help:      "RPC request latency in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
			},
			[]string{"method", "status"},
		),
		lamports: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "planned_lamports",
				Help:      "Lamports committed by the last assembled transaction",
			},
			[]string{"kind"},
		),
	}

	c.registry.MustRegister(c.transactionCounter, c.transactionDuration, c.rpcLatency, c.lamports)
	return c
}

// Registry возвращает реестр для экспорта.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordTransaction записывает метрики транзакции с учетом контекста
func (c *Collector) RecordTransaction(ctx context.Context, mode string, duration time.Duration, err error) {
	status := StatusSuccess
	switch {
	case errors.Is(err, context.Canceled) || ctx.Err() != nil:
		status = StatusCancelled
	case err != nil:
		status = StatusFailed
	}

	c.transactionCounter.WithLabelValues(status, mode).Inc()
	c.transactionDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// RecordRPCLatency записывает метрики RPC-запроса
func (c *Collector) RecordRPCLatency(method string, duration time.Duration, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusFailed
	}
	c.rpcLatency.WithLabelValues(method, status).Observe(duration.Seconds())
}

// SetPlannedLamports фиксирует суммы пополнения WSOL и чаевых.
func (c *Collector) SetPlannedLamports(funding, tip uint64) {
	c.lamports.WithLabelValues("funding").Set(float64(funding))
	c.lamports.WithLabelValues("tip").Set(float64(tip))
}

// WriteToTextfile сохраняет метрики в формате textfile collector node_exporter.
func (c *Collector) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
