// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

// Package queuemetrics exports request queue depth as Prometheus
// gauges. A [Collector] owns a private registry, so one invocation of
// the metrics command produces exactly the series for the stores it
// observed, ready for the node_exporter textfile collector or stdout.
package queuemetrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/cedadev/miptools/lib/request"
)

// Namespace prefixes every metric name.
const Namespace = "miptools"

// Collector holds the queue gauges.
type Collector struct {
	registry *prometheus.Registry
	requests *prometheus.GaugeVec
	lastID   *prometheus.GaugeVec
}

// New returns a Collector with its gauges registered on a fresh
// registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "requests",
			Help:      "Requests in each status directory, all users",
		}, []string{"kind", "status"}),
		lastID: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "last_request_id",
			Help:      "Most recently allocated request ID",
		}, []string{"kind"}),
	}
	c.registry.MustRegister(c.requests, c.lastID)
	return c
}

// Registry returns the collector's registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Observe scans store across every status and every user and sets the
// gauges for its kind. Statuses with no requests are reported as 0 so
// a drained queue is distinguishable from a missing series.
func (c *Collector) Observe(store *request.Store) error {
	kind := string(store.Kind())

	requests, err := store.Scan(request.ScanOptions{Statuses: request.AllStatuses, AllUsers: true})
	if err != nil {
		return fmt.Errorf("observing %s queue: %w", kind, err)
	}
	counts := make(map[request.Status]int, len(request.AllStatuses))
	for _, entry := range requests {
		counts[entry.Status]++
	}
	for _, status := range request.AllStatuses {
		c.requests.WithLabelValues(kind, status.String()).Set(float64(counts[status]))
	}

	last, err := store.LastID()
	if err != nil {
		return fmt.Errorf("observing %s queue: %w", kind, err)
	}
	c.lastID.WithLabelValues(kind).Set(float64(last))
	return nil
}

// WriteTextfile atomically writes the metrics to path in the text
// exposition format, for the node_exporter textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}

// WriteText writes the metrics to w in the text exposition format.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}
