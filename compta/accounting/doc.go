// Package accounting turns normalized sales, settlement and payout records into
// balanced double-entry ledger lines.
//
// Core flow:
//   - Classify routes each transaction to exactly one generator combination.
//   - The generators (sale/refund, PSP settlement, marketplace commission,
//     marketplace payout, direct payment, payout aggregation) build entries and
//     call VerifyBalance before returning them.
//   - Generator.Generate runs a whole batch and strips lettrage from orphaned avoirs.
//   - NormalizeLettrage renames reconciliation tags to short alphabetic codes.
//
// Every batch of entries returned by one generator call balances to the cent;
// a violation is reported as *BalanceError and indicates an engine defect.
package accounting
