package accounting

import (
	"github.com/ecomledger/lib-compta/v2/compta/config"
	constant "github.com/ecomledger/lib-compta/v2/compta/constants"
)

// BuildAccount concatenates prefix, channel code and country code.
// An empty channel code is omitted, never zero-padded.
func BuildAccount(prefix, channelCode, countryCode string) string {
	return prefix + channelCode + countryCode
}

// ResolveShippingZone classifies a numeric country code for shipping accounts.
//
// France maps to ZoneFrance; DOM-TOM and countries absent from the VAT table
// map to ZoneNonEU; every other configured country maps to ZoneEU.
func ResolveShippingZone(countryCode string, cfg *config.AppConfig) string {
	if countryCode == cfg.FranceCountryCode {
		return constant.ZoneFrance
	}

	if cfg.IsDOMTOM(countryCode) {
		return constant.ZoneNonEU
	}

	if _, ok := cfg.VATRate(countryCode); !ok {
		return constant.ZoneNonEU
	}

	return constant.ZoneEU
}

// BuildShippingAccount concatenates prefix, channel code and zone code as-is.
func BuildShippingAccount(prefix, channelCode, zoneCode string) string {
	return prefix + channelCode + zoneCode
}
