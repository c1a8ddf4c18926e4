// Package services holds stateless domain services that do not belong to a
// single aggregate.
//
// The package includes:
//   - GeoCodeResolver: postal code to region/sub-region codes and
//     category/brand to product-type codes, used to compose order identifiers
package services
