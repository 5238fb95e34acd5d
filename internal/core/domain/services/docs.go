// Package services provides stateless domain services for the ordering model.
//
// The package includes:
//   - TotalCalculator: derives an order total from its adjustments and lines
//   - AccessHasher: issues and checks the opaque token for guest order lookups
package services
