// Package log defines the logging interface and typed logging fields used by
// the accounting engine.
//
// Adapters (such as the zap package) implement Logger so the engine can keep
// logging calls consistent across backends. Domain constructors (Reference,
// Channel, Account, Amount) keep field keys uniform across generators and checkers.
// Recorder keeps events in memory for assertions in tests.
package log
