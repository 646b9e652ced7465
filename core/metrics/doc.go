// Package metrics holds the Prometheus collectors of the service.
//
// Collectors are registered on the default registry at package init through
// promauto. Middleware records per-route HTTP counters and latency; Handler
// serves /metrics through the fiber adaptor. The moderation feature updates
// QueueLoads, QueueSize, Resolutions and ResolveLatency directly.
package metrics
