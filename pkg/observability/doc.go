// Package observability turns lifecycle hooks into Prometheus metrics.
//
// Attach Metrics.Hooks to the history manager and to persistence options;
// expose Metrics.Handler wherever the process serves HTTP.
package observability
