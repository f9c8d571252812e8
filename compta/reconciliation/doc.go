// Package reconciliation inspects a generated run and reports anomalies.
//
// Checkers never modify their input and never fail: every inconsistency is
// returned as an accounting.Anomaly whose severity tells how much attention it
// needs. VatChecker and MatchingChecker read transactions, LettrageChecker
// reads the normalized entries.
package reconciliation
