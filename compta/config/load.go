package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	constant "github.com/ecomledger/lib-compta/v2/compta/constants"
	"github.com/ecomledger/lib-compta/v2/compta/safe"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var defaultMatchingTolerance = decimal.New(1, -2)

// Load reads, defaults and validates a YAML configuration file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes YAML strictly (unknown keys are errors), then applies defaults and validates.
func Parse(data []byte) (*AppConfig, error) {
	cfg := &AppConfig{}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyDefaults fills every empty setting that has a conventional value.
func (c *AppConfig) ApplyDefaults() {
	setDefault(&c.FranceCountryCode, constant.DefaultFranceCountryCode)
	setDefault(&c.Accounts.SalePrefix, constant.DefaultSaleAccountPrefix)
	setDefault(&c.Accounts.VATPrefix, constant.DefaultVATAccountPrefix)
	setDefault(&c.Accounts.PSPTransitPrefix, constant.DefaultPSPTransitPrefix)
	setDefault(&c.Accounts.Transit, constant.DefaultTransitAccount)
	setDefault(&c.Accounts.Bank, constant.DefaultBankAccount)
	setDefault(&c.Accounts.ClientClass, constant.ClientAccountClass)
	setDefault(&c.Journals.Sales, constant.JournalSales)
	setDefault(&c.Journals.Settlement, constant.JournalSettlement)
	setDefault(&c.Journals.Bank, constant.JournalBank)
	setDefault(&c.Journals.Miscellaneous, constant.JournalMiscellaneous)

	if c.ShippingZoneCodes == nil {
		c.ShippingZoneCodes = map[string]string{
			constant.ZoneFrance: "1",
			constant.ZoneEU:     "2",
			constant.ZoneNonEU:  "3",
		}
	}

	if c.MatchingTolerance == nil {
		tolerance := defaultMatchingTolerance
		c.MatchingTolerance = &tolerance
	}
}

// Validate reports every structural problem at once.
//
// Missing client or supplier accounts are not validation errors: they surface
// as LookupError when a transaction of that channel is generated.
func (c *AppConfig) Validate() error {
	var errs []error

	if c.MatchingTolerance != nil && c.MatchingTolerance.IsNegative() {
		errs = append(errs, errors.New("matching_tolerance must not be negative"))
	}

	hundred := decimal.NewFromInt(100)

	for country, rate := range c.VATRates {
		if rate.IsNegative() || rate.GreaterThan(hundred) {
			errs = append(errs, fmt.Errorf("vat_rates[%s]: rate %s out of range", country, rate))
		}
	}

	for key, psp := range c.PSPs {
		if psp.Account == "" {
			errs = append(errs, fmt.Errorf("psps[%s].account is required", key))
		}

		if psp.CommissionAccount == "" {
			errs = append(errs, fmt.Errorf("psps[%s].commission_account is required", key))
		}
	}

	for method, account := range c.DirectPayments {
		if account == "" {
			errs = append(errs, fmt.Errorf("direct_payments[%s]: account is required", method))
		}
	}

	for name, ch := range c.Channels {
		if ch.CommissionVATRate != nil && (ch.CommissionVATRate.IsNegative() || ch.CommissionVATRate.GreaterThan(hundred)) {
			errs = append(errs, fmt.Errorf("channels[%s].commission_vat_rate out of range", name))
		}

		if ch.ReferencePeriodPattern != "" {
			if _, err := safe.Compile(ch.ReferencePeriodPattern); err != nil {
				errs = append(errs, fmt.Errorf("channels[%s].reference_period_pattern: %w", name, err))
			}
		}
	}

	return errors.Join(errs...)
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}
