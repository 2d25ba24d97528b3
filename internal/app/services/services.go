// Package services contains the business logic layer.
//
// Services defined in this package:
//   - AuthService: registration, login, token issuance, profile
//   - EnrollmentService: enrollment validation and commit rules
//   - CatalogService: instructor/course/student administration and listings
//   - LogService: audit log recording, querying, and export
package services
