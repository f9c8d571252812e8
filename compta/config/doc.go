// Package config defines AppConfig, the read-only chart of accounts and
// channel settings consumed by every generator and checker.
//
// Typical usage:
//
//	cfg, err := config.Load("compta.yaml")
//	if err != nil {
//	    return fmt.Errorf("load accounting config: %w", err)
//	}
//
// AppConfig is never mutated after Parse returns, so one value can be shared by
// concurrent engine runs.
package config
