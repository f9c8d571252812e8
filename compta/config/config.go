package config

import (
	"strings"

	constant "github.com/ecomledger/lib-compta/v2/compta/constants"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AppConfig is the validated configuration of one accounting setup.
type AppConfig struct {
	FranceCountryCode  string                     `yaml:"france_country_code"`
	DOMTOMCountryCodes []string                   `yaml:"dom_tom_country_codes"`
	VATRates           map[string]decimal.Decimal `yaml:"vat_rates"`
	ShippingZoneCodes  map[string]string          `yaml:"shipping_zone_codes"`
	Accounts           AccountsConfig             `yaml:"accounts"`
	Journals           JournalsConfig             `yaml:"journals"`
	Channels           map[string]ChannelConfig   `yaml:"channels"`
	PSPs               map[string]PSPConfig       `yaml:"psps"`
	DirectPayments     map[string]string          `yaml:"direct_payments"`
	SpecialAccounts    map[string]string          `yaml:"special_accounts"`
	MatchingTolerance  *decimal.Decimal           `yaml:"matching_tolerance"`
}

// AccountsConfig holds account prefixes and the shared accounts.
//
// ShippingPrefix has no default: when empty, shipping is folded into the
// product revenue line instead of getting its own account. VATDeductible has
// no default either: without it commissions are expensed VAT included.
type AccountsConfig struct {
	SalePrefix       string `yaml:"sale_prefix"`
	ShippingPrefix   string `yaml:"shipping_prefix"`
	VATPrefix        string `yaml:"vat_prefix"`
	VATDeductible    string `yaml:"vat_deductible"`
	PSPTransitPrefix string `yaml:"psp_transit_prefix"`
	Transit          string `yaml:"transit"`
	Bank             string `yaml:"bank"`
	ClientClass      string `yaml:"client_class"`
}

// JournalsConfig maps each kind of source document to a journal code.
type JournalsConfig struct {
	Sales         string `yaml:"sales"`
	Settlement    string `yaml:"settlement"`
	Bank          string `yaml:"bank"`
	Miscellaneous string `yaml:"miscellaneous"`
}

// ChannelConfig describes one sales channel.
//
// A channel with a SupplierAccount is a marketplace. LettrageByPayoutCycle makes
// client lines reconcile on the payout reference instead of the order reference.
type ChannelConfig struct {
	Name                   string           `yaml:"name"`
	Code                   string           `yaml:"code"`
	ClientAccount          string           `yaml:"client_account"`
	SupplierAccount        string           `yaml:"supplier_account"`
	ExpenseAccount         string           `yaml:"expense_account"`
	SubscriptionAccount    string           `yaml:"subscription_account"`
	CommissionVATRate      *decimal.Decimal `yaml:"commission_vat_rate"`
	SalesJournal           string           `yaml:"sales_journal"`
	LettrageByPayoutCycle  bool             `yaml:"lettrage_by_payout_cycle"`
	ReferencePeriodPattern string           `yaml:"reference_period_pattern"`
}

// PSPConfig describes a payment service provider.
//
// With an IntermediaryAccount the settlement is posted as two independent
// pairs through that account instead of hitting Account directly.
type PSPConfig struct {
	Name                string `yaml:"name"`
	Account             string `yaml:"account"`
	CommissionAccount   string `yaml:"commission_account"`
	IntermediaryAccount string `yaml:"intermediary_account"`
}

// Label returns the PSP display name, falling back to the key.
func (p PSPConfig) Label(key string) string {
	if p.Name != "" {
		return p.Name
	}

	return titleCase(key)
}

// ClearingAccount is the account a payout empties: the intermediary when
// configured, the PSP account otherwise.
func (p PSPConfig) ClearingAccount() string {
	if p.IntermediaryAccount != "" {
		return p.IntermediaryAccount
	}

	return p.Account
}

// ---------------------------------------------------------------------------
// Read-only lookups
// ---------------------------------------------------------------------------

// Channel returns the configuration of channel.
func (c *AppConfig) Channel(channel string) (ChannelConfig, bool) {
	ch, ok := c.Channels[channel]

	return ch, ok
}

// IsMarketplace reports whether channel settles through a supplier account.
func (c *AppConfig) IsMarketplace(channel string) bool {
	ch, ok := c.Channels[channel]

	return ok && ch.SupplierAccount != ""
}

// HasExpenseAccount reports whether the marketplace books commissions on a dedicated expense account.
func (c *AppConfig) HasExpenseAccount(channel string) bool {
	return c.Channels[channel].ExpenseAccount != ""
}

// ClientAccount returns the 411 account of channel.
func (c *AppConfig) ClientAccount(channel string) (string, error) {
	ch, ok := c.Channels[channel]
	if !ok {
		return "", &LookupError{Kind: KindChannel, Key: channel}
	}

	if ch.ClientAccount == "" {
		return "", &LookupError{Kind: KindClientAccount, Key: channel}
	}

	return ch.ClientAccount, nil
}

// SupplierAccount returns the 401 account of a marketplace channel.
func (c *AppConfig) SupplierAccount(channel string) (string, error) {
	ch, ok := c.Channels[channel]
	if !ok {
		return "", &LookupError{Kind: KindChannel, Key: channel}
	}

	if ch.SupplierAccount == "" {
		return "", &LookupError{Kind: KindSupplierAccount, Key: channel}
	}

	return ch.SupplierAccount, nil
}

// ChannelCode returns the code inserted in revenue/VAT accounts, possibly empty.
func (c *AppConfig) ChannelCode(channel string) string {
	return c.Channels[channel].Code
}

// ChannelName returns the human channel name written in labels.
func (c *AppConfig) ChannelName(channel string) string {
	if name := c.Channels[channel].Name; name != "" {
		return name
	}

	return titleCase(channel)
}

// SalesJournal returns the sales journal of channel.
func (c *AppConfig) SalesJournal(channel string) string {
	if j := c.Channels[channel].SalesJournal; j != "" {
		return j
	}

	return c.Journals.Sales
}

// PSP returns the provider configured under key.
func (c *AppConfig) PSP(key string) (PSPConfig, bool) {
	p, ok := c.PSPs[key]

	return p, ok
}

// DirectPaymentAccount returns the account of a direct payment method.
func (c *AppConfig) DirectPaymentAccount(method string) (string, bool) {
	account, ok := c.DirectPayments[method]

	return account, ok && account != ""
}

// SpecialAccount returns the account configured for a special line tag.
func (c *AppConfig) SpecialAccount(tag string) (string, bool) {
	account, ok := c.SpecialAccounts[tag]

	return account, ok && account != ""
}

// VATRate returns the configured rate (percent) of a numeric country code.
func (c *AppConfig) VATRate(countryCode string) (decimal.Decimal, bool) {
	rate, ok := c.VATRates[countryCode]

	return rate, ok
}

// Tolerance returns the matching tolerance. An explicit zero means exact
// matching; an unset value falls back to one cent.
func (c *AppConfig) Tolerance() decimal.Decimal {
	if c.MatchingTolerance == nil {
		return defaultMatchingTolerance
	}

	return *c.MatchingTolerance
}

// IsDOMTOM reports whether countryCode is an overseas territory outside the VAT area.
func (c *AppConfig) IsDOMTOM(countryCode string) bool {
	for _, code := range c.DOMTOMCountryCodes {
		if code == countryCode {
			return true
		}
	}

	return false
}

// ShippingZoneCode returns the account suffix of a shipping zone.
func (c *AppConfig) ShippingZoneCode(zone string) string {
	return c.ShippingZoneCodes[zone]
}

// ReferencePeriodPattern returns the regex used to read a year-month from
// refund references of channel, or "" when the channel has none.
func (c *AppConfig) ReferencePeriodPattern(channel string) string {
	if p := c.Channels[channel].ReferencePeriodPattern; p != "" {
		return p
	}

	if channel == constant.ChannelManoMano {
		return constant.DefaultManoManoPeriodPattern
	}

	return ""
}

func titleCase(s string) string {
	return cases.Title(language.French).String(strings.ReplaceAll(s, "_", " "))
}
