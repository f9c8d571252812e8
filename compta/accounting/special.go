package accounting

import "fmt"

// SpecialType selects an alternate routing path for a transaction.
// SpecialNone marks a regular sale or refund row.
type SpecialType string

const (
	SpecialNone                   SpecialType = ""
	SpecialReturnsAvoir           SpecialType = "returns_avoir"
	SpecialPayoutDetailRefund     SpecialType = "payout_detail_refund"
	SpecialOrphanSettlement       SpecialType = "orphan_settlement"
	SpecialRefundSettlement       SpecialType = "refund_settlement"
	SpecialDirectPayment          SpecialType = "direct_payment"
	SpecialSubscription           SpecialType = "SUBSCRIPTION"
	SpecialAdjustment             SpecialType = "ADJUSTMENT"
	SpecialEcoContribution        SpecialType = "ECO_CONTRIBUTION"
	SpecialEcoContributionService SpecialType = "ECO_CONTRIBUTION_SERVICE"
	SpecialRefundPenalty          SpecialType = "REFUND_PENALTY"
)

var specialLabels = map[SpecialType]string{
	SpecialSubscription:           "Abonnement",
	SpecialAdjustment:             "Ajustement",
	SpecialEcoContribution:        "Eco-contribution",
	SpecialEcoContributionService: "Eco-contribution service",
	SpecialRefundPenalty:          "Pénalité remboursement",
	SpecialDirectPayment:          "Paiement direct",
}

// ParseSpecialType validates a raw tag coming from a parser.
func ParseSpecialType(raw string) (SpecialType, error) {
	st := SpecialType(raw)
	if !st.Known() {
		return SpecialNone, NewDomainError(ErrorUnknownSpecialType, "special_type", fmt.Sprintf("unknown special type %q", raw))
	}

	return st, nil
}

// Known reports whether st is one of the declared tags (SpecialNone included).
func (st SpecialType) Known() bool {
	switch st {
	case SpecialNone, SpecialReturnsAvoir, SpecialPayoutDetailRefund, SpecialOrphanSettlement,
		SpecialRefundSettlement, SpecialDirectPayment, SpecialSubscription, SpecialAdjustment,
		SpecialEcoContribution, SpecialEcoContributionService, SpecialRefundPenalty:
		return true
	default:
		return false
	}
}

// IsSettlement reports whether the tag is a settlement-only row.
func (st SpecialType) IsSettlement() bool {
	return st == SpecialPayoutDetailRefund || st == SpecialOrphanSettlement || st == SpecialRefundSettlement
}

func (st SpecialType) label() string {
	if l, ok := specialLabels[st]; ok {
		return l
	}

	return string(st)
}
