package rates

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Load builds the rate table, starting from the compiled-in defaults and
// applying overrides from Viper configuration (config file or GARI_ env
// vars). Statutory rates are intentionally not overridable; the exchange
// rate and the negotiable service fees are.
func Load() (RateTable, error) {
	table := Default()

	if v := viper.GetString("rates.exchange_rate"); v != "" {
		rate, err := decimal.NewFromString(v)
		if err != nil {
			return RateTable{}, fmt.Errorf("invalid rates.exchange_rate %q: %w", v, err)
		}
		table.ExchangeRate = rate
	}

	fees := map[string]string{
		"Clearing Agent":               viper.GetString("fees.clearing_agent"),
		"Transport to Nairobi":         viper.GetString("fees.transport"),
		"Port Charges":                 viper.GetString("fees.port_charges"),
		"Inspection (KEBS/PVOC)":       viper.GetString("fees.inspection"),
		"Number Plates & Registration": viper.GetString("fees.number_plates"),
	}
	for i, fee := range table.ServiceFees {
		raw, ok := fees[fee.Name]
		if !ok || raw == "" {
			continue
		}
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return RateTable{}, fmt.Errorf("invalid fee override for %s: %w", fee.Name, err)
		}
		table.ServiceFees[i].AmountKES = amount
	}

	if err := table.Validate(); err != nil {
		return RateTable{}, err
	}
	return table, nil
}
