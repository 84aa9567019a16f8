package profile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Decimal lets YAML scalars such as 125 or "0.5" load without float rounding.
type Decimal struct {
	decimal.Decimal
}

func (d *Decimal) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("decimal must be a scalar")
	}
	if value.Value == "" {
		d.Decimal = decimal.Zero
		return nil
	}
	dec, err := decimal.NewFromString(value.Value)
	if err != nil {
		return fmt.Errorf("invalid decimal %q: %w", value.Value, err)
	}
	d.Decimal = dec
	return nil
}

func (d Decimal) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// Options are the per-client settings. A Profile carries them by value and
// nothing mutates them after construction.
type Options struct {
	BrokerID                          string            `yaml:"broker_id"`
	DefaultType                       string            `yaml:"default_type"`
	DefaultMarginMode                 string            `yaml:"default_margin_mode"`
	CreateMarketBuyOrderRequiresPrice bool              `yaml:"create_market_buy_order_requires_price"`
	DefaultNetworks                   map[string]string `yaml:"default_networks"`
	FetchMarketTypes                  []string          `yaml:"fetch_market_types"`
	OptionFamilies                    []string          `yaml:"option_families"`
	MaxLeverage                       Decimal           `yaml:"max_leverage"`
	OHLCVLimit                        int               `yaml:"ohlcv_limit"`
	HistoryCandlesAfterMs             int64             `yaml:"history_candles_after_ms"`
}

// LoadOptions overlays a YAML file on base. Unknown keys are rejected.
func LoadOptions(path string, base Options) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, err
	}
	return DecodeOptions(data, base)
}

// DecodeOptions overlays YAML bytes on base.
func DecodeOptions(data []byte, base Options) (Options, error) {
	out := base.clone()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&out); err != nil && err != io.EOF {
		return Options{}, fmt.Errorf("decode options: %w", err)
	}
	if err := out.Validate(); err != nil {
		return Options{}, err
	}
	return out, nil
}

// Validate rejects settings no builder can honour.
func (o Options) Validate() error {
	switch strings.ToLower(o.DefaultMarginMode) {
	case "", "cross", "isolated", "cash":
	default:
		return fmt.Errorf("default_margin_mode must be cross, isolated or cash, got %q", o.DefaultMarginMode)
	}
	if len(o.BrokerID) > 16 {
		return fmt.Errorf("broker_id must be at most 16 characters, got %d", len(o.BrokerID))
	}
	if o.MaxLeverage.IsNegative() {
		return fmt.Errorf("max_leverage must not be negative")
	}
	return nil
}

func (o Options) clone() Options {
	out := o
	if o.DefaultNetworks != nil {
		out.DefaultNetworks = make(map[string]string, len(o.DefaultNetworks))
		for k, v := range o.DefaultNetworks {
			out.DefaultNetworks[k] = v
		}
	}
	out.FetchMarketTypes = append([]string(nil), o.FetchMarketTypes...)
	out.OptionFamilies = append([]string(nil), o.OptionFamilies...)
	return out
}
