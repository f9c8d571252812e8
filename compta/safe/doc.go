// Package safe provides panic-free helpers for money arithmetic and regex handling.
//
// Money helpers operate on shopspring/decimal values and apply one rounding
// policy everywhere: two decimals, half away from zero (decimal.Round).
// Functions that can fail return explicit errors instead of panicking.
package safe
