// Package pointers provides helpers for pointer creation and conversions.
//
// Normalized transactions model "not known yet" values (payout date, payout
// reference, payment method) as nil pointers; these helpers keep fixtures and
// parser adapters free of temporary variables.
package pointers
