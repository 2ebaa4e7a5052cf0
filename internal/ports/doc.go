// Package ports defines interfaces between layers in the hexagonal architecture.
// Service ports are implemented by the application layer and called by handlers.
// Dependency ports are implemented by outbound adapters (data store, work
// queue, mail transport) and driven by the application and lifecycle layers.
package ports
