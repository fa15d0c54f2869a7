// Package doxsearch provides a local, CLI-based lookup tool for the static
// search indexes that Doxygen emits alongside generated HTML documentation.
// It reads the index artifacts, validates them into an immutable store, and
// answers substring and exact token lookups in a deterministic order.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, doxygen/, etree/).
package doxsearch
