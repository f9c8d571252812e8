package accounting

// Route names the generator chain a transaction is dispatched to.
type Route int

const (
	// RouteNone drops the transaction without entries.
	RouteNone Route = iota
	// RouteAvoir posts a refund-direction credit note.
	RouteAvoir
	// RouteSettlement posts the PSP settlement only.
	RouteSettlement
	// RouteDirectPayment posts a storefront payment settled outside any PSP.
	RouteDirectPayment
	// RouteMarketplaceSpecial posts a marketplace special line.
	RouteMarketplaceSpecial
	// RouteMarketplaceSale posts sale, commission and possibly the unit payout.
	RouteMarketplaceSale
	// RouteStorefrontSale posts sale then settlement or direct payment.
	RouteStorefrontSale
	// RouteUnknown flags a tag outside the known set.
	RouteUnknown
)

var routeNames = [...]string{
	RouteNone:               "none",
	RouteAvoir:              "avoir",
	RouteSettlement:         "settlement",
	RouteDirectPayment:      "direct_payment",
	RouteMarketplaceSpecial: "marketplace_special",
	RouteMarketplaceSale:    "marketplace_sale",
	RouteStorefrontSale:     "storefront_sale",
	RouteUnknown:            "unknown",
}

func (r Route) String() string {
	if r < 0 || int(r) >= len(routeNames) {
		return "unknown"
	}

	return routeNames[r]
}

// Classify selects the route of a transaction from its special type and the
// marketplace capability of its channel. The precedence is:
//
//  1. returns_avoir goes to the sale generator in refund direction
//  2. settlement tags go to the settlement generator
//  3. any other tag on a marketplace goes to the marketplace payout generator
//  4. any other tag elsewhere is dropped, except direct_payment
//  5. untagged rows are sales
func Classify(st SpecialType, isMarketplace bool) Route {
	switch st {
	case SpecialReturnsAvoir:
		return RouteAvoir
	case SpecialPayoutDetailRefund, SpecialOrphanSettlement, SpecialRefundSettlement:
		return RouteSettlement
	case SpecialDirectPayment:
		if isMarketplace {
			return RouteMarketplaceSpecial
		}

		return RouteDirectPayment
	case SpecialSubscription, SpecialAdjustment, SpecialEcoContribution,
		SpecialEcoContributionService, SpecialRefundPenalty:
		if isMarketplace {
			return RouteMarketplaceSpecial
		}

		return RouteNone
	case SpecialNone:
		if isMarketplace {
			return RouteMarketplaceSale
		}

		return RouteStorefrontSale
	default:
		return RouteUnknown
	}
}
