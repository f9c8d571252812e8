// Package compta provides the context plumbing shared by the accounting packages.
//
// Hosts attach their logger and tracer once, the engine reads them back:
//
//	ctx = compta.ContextWithLogger(ctx, logger)
//	ctx = compta.ContextWithTracer(ctx, tracer)
//	result, err := eng.Run(ctx, txs, payouts)
//
// The domain lives in subpackages: accounting generates entries,
// reconciliation checks them, engine wires both behind one call.
package compta
