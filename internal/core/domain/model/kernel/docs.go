// Package kernel provides the shared value objects of the custody domain.
//
// The package includes:
//   - UUID: record identifiers for intake, verification, QC decision and inventory records
//   - Location: the holding locations a verified device can be routed to
//   - Clock: the time source injected wherever "now" matters (stock-in dates, aging)
//   - DomainEvent, Aggregate: the contracts the unit of work uses to publish events
//
// These primitives are immutable and safe for concurrent use.
package kernel
