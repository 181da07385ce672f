// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
//   - Renderer / RendererFactory: JavaScript-capable page rendering
//   - ListingSource / ListingSourceFactory: candidate record extraction
//   - VenueFetcher: per-venue supplemental record fetching
//   - EventCache: durable already-delivered key store
//   - EventSink: append-only destination with upsert semantics
//
// Import rules: this package may import domain only - never an adapter or
// connector package.
package driven
