// Package services implements the core business logic: record validation,
// the report pipeline and destination maintenance. Services depend only on
// domain types and driven ports; adapters are injected by the caller.
package services
