// Package metrics exposes generation activity as Prometheus metrics. The
// Collector is an events.EventHandler; register it with the emitter the
// orchestrator publishes to.
package metrics
