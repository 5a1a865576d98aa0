// Package services provides domain services that orchestrate business operations
// across multiple domain entities. It implements business workflows that don't
// naturally belong to a single aggregate root.
//
// The package includes:
//   - DeliveryAllocator: A domain service that selects the least-loaded
//     available delivery agent for an order
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design principles.
package services
