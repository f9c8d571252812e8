package constant

const (
	// ClientAccountClass is the 3-char class of customer accounts (411).
	ClientAccountClass = "411"
	// SupplierAccountClass is the 3-char class of supplier accounts (401).
	SupplierAccountClass = "401"

	// DefaultSaleAccountPrefix prefixes product revenue accounts.
	DefaultSaleAccountPrefix = "707"
	// DefaultShippingAccountPrefix prefixes shipping revenue accounts.
	DefaultShippingAccountPrefix = "7085"
	// DefaultVATAccountPrefix prefixes collected VAT accounts.
	DefaultVATAccountPrefix = "44571"
	// DefaultPSPTransitPrefix is shared by PSP clearing accounts checked by the lettrage checker.
	DefaultPSPTransitPrefix = "511"
	// DefaultTransitAccount receives payouts before they reach the bank.
	DefaultTransitAccount = "58000000"
	// DefaultBankAccount is the main bank account.
	DefaultBankAccount = "51200000"

	// DefaultFranceCountryCode is the ISO 3166 numeric code for France.
	DefaultFranceCountryCode = "250"
)

// Shipping zone identifiers returned by the shipping zone resolver.
const (
	ZoneFrance = "france"
	ZoneEU     = "ue"
	ZoneNonEU  = "hors_ue"
)
