// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics defines the Prometheus collectors of the wallet service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "invisible_wallet"

// Collectors groups every collector of the service. A nil *Collectors is
// valid and records nothing.
type Collectors struct {
	registry *prometheus.Registry

	walletOperations  *prometheus.CounterVec
	conversions       *prometheus.CounterVec
	estimates         *prometheus.CounterVec
	lockouts          prometheus.Counter
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	activeConnections prometheus.Gauge
}

// New creates the collectors on a fresh registry that also exposes Go
// runtime and process metrics.
func New() *Collectors {
	c := &Collectors{
		registry: prometheus.NewRegistry(),

		walletOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wallet_operations_total",
			Help:      "Wallet create, recover and sign attempts by outcome",
		}, []string{"operation", "result"}),

		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Executed path payment conversions by outcome",
		}, []string{"network", "result"}),

		estimates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversion_estimates_total",
			Help:      "Conversion estimates by whether a path was found",
		}, []string{"network", "result"}),

		lockouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wallet_lockouts_total",
			Help:      "Requests refused because of too many wrong passphrases",
		}),

		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"method", "route", "status"}),

		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		activeConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_active_requests",
			Help:      "Number of HTTP requests in flight",
		}),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.walletOperations,
		c.conversions,
		c.estimates,
		c.lockouts,
		c.httpRequests,
		c.httpDuration,
		c.activeConnections,
	)

	return c
}

// Handler exposes the registry in the Prometheus text format.
func (c *Collectors) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Registry returns the underlying registry.
func (c *Collectors) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

func (c *Collectors) WalletOperation(operation string, success bool) {
	if c == nil {
		return
	}
	c.walletOperations.WithLabelValues(operation, result(success)).Inc()
}

func (c *Collectors) Conversion(network string, success bool) {
	if c == nil {
		return
	}
	c.conversions.WithLabelValues(network, result(success)).Inc()
}

func (c *Collectors) Estimate(network string, found bool) {
	if c == nil {
		return
	}
	label := "found"
	if !found {
		label = "no_path"
	}
	c.estimates.WithLabelValues(network, label).Inc()
}

func (c *Collectors) Lockout() {
	if c == nil {
		return
	}
	c.lockouts.Inc()
}

// RequestStarted marks a request in flight and returns the function that
// records its completion.
func (c *Collectors) RequestStarted() func(method, route string, status int) {
	if c == nil {
		return func(string, string, int) {}
	}

	start := time.Now()
	c.activeConnections.Inc()

	return func(method, route string, status int) {
		c.activeConnections.Dec()
		c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		c.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

func result(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
