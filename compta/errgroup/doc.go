// Package errgroup runs independent accounting batches concurrently.
//
// The first failing batch cancels the group context and its error is returned
// by Wait. A panicking batch is logged with its stack and reported as
// ErrPanicRecovered. SetLimit bounds how many batches run at the same time.
package errgroup
