package constant

// Anomaly types raised during generation.
const (
	AnomalyBalanceError       = "balance_error"
	AnomalyMixedPSPPayout     = "mixed_psp_payout"
	AnomalyUnknownPSP         = "unknown_psp"
	AnomalyUnknownPSPDetail   = "unknown_psp_detail"
	AnomalyUnknownSpecialType = "unknown_special_type"
)

// Anomaly types raised by the VAT checker.
const (
	AnomalyUnknownCountry    = "unknown_country"
	AnomalyVATRateMismatch   = "vat_rate_mismatch"
	AnomalyVATAmountMismatch = "vat_amount_mismatch"
	AnomalyTTCMismatch       = "ttc_mismatch"
)

// Anomaly types raised by the matching checker.
const (
	AnomalyAmountMismatch        = "amount_mismatch"
	AnomalyMissingPayout         = "missing_payout"
	AnomalyOrphanRefund          = "orphan_refund"
	AnomalyPriorPeriodRefund     = "prior_period_refund"
	AnomalyOverdueManoManoPayout = "overdue_manomano_payout"
	AnomalyPendingManoManoPayout = "pending_manomano_payout"
)

// AnomalyLettrageImbalance is raised by the lettrage checker.
const AnomalyLettrageImbalance = "lettrage_imbalance"
