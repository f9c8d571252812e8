// Package engine runs the whole accounting pipeline behind one call.
//
// A run dispatches every transaction and payout to the generators, normalizes
// lettrage codes over the full entry set, then appends the anomalies of every
// configured checker. The engine holds only read-only configuration and can
// be shared by concurrent runs.
package engine
