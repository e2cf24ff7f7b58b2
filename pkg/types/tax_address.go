package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TaxAddress is the minimal location the tax service resolves for a cart.
type TaxAddress struct {
	CountryCode string `json:"country_code"`
	PostalCode  string `json:"postal_code"`
}

// Value serializes the tax address to JSON.
func (t *TaxAddress) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	return json.Marshal(t)
}

// Scan decodes JSONB into the tax address struct.
func (t *TaxAddress) Scan(value interface{}) error {
	if value == nil {
		*t = TaxAddress{}
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, t)
}

func asJSON(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported jsonb source type %T", value)
	}
}
