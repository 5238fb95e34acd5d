// Package kernel provides core domain primitives shared by the ordering model.
//
// The package includes:
//   - ID: a database-assigned positive identifier for orders, lines, carts and products
//   - Reference: an external reference attached to financial transactions
//   - Day: a calendar day used for day-granularity filters
//
// Values are immutable; zero values are invalid and fail Validate.
package kernel
