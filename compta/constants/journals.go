package constant

// Default journal codes.
const (
	JournalSales         = "VE"
	JournalSettlement    = "RG"
	JournalBank          = "BQ"
	JournalMiscellaneous = "OD"
)

// ChannelManoMano identifies the marketplace whose refund references encode a year-month.
const ChannelManoMano = "manomano"

// DefaultManoManoPeriodPattern captures YY and MM after an optional leading letter.
const DefaultManoManoPeriodPattern = `^[A-Za-z]?(\d{2})(\d{2})\d+`

// Label prefixes written on generated entries.
const (
	LabelSale          = "Vente"
	LabelRefund        = "Avoir"
	LabelCommission    = "Commission"
	LabelSettlement    = "Règlement"
	LabelOrphan        = "[Orphelin]"
	LabelDirectPayment = "Paiement direct"
	LabelPayout        = "Reversement"
)
