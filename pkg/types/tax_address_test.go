package types

import "testing"

func TestTaxAddressValueAndScan(t *testing.T) {
	address := TaxAddress{
		CountryCode: "US",
		PostalCode:  "94105",
	}

	val, err := address.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}

	var decoded TaxAddress
	if err := decoded.Scan(val); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if decoded.CountryCode != address.CountryCode {
		t.Fatalf("expected country %q, got %q", address.CountryCode, decoded.CountryCode)
	}
	if decoded.PostalCode != address.PostalCode {
		t.Fatalf("expected postal code %q, got %q", address.PostalCode, decoded.PostalCode)
	}
}

func TestTaxAddressScanNil(t *testing.T) {
	var address TaxAddress
	if err := address.Scan(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if address.CountryCode != "" || address.PostalCode != "" {
		t.Fatalf("expected zero value after nil scan, got %+v", address)
	}
}

func TestTaxAddressScanString(t *testing.T) {
	var address TaxAddress
	if err := address.Scan(`{"country_code":"DE","postal_code":"10115"}`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if address.CountryCode != "DE" {
		t.Fatalf("expected country DE, got %q", address.CountryCode)
	}
}

func TestTaxAddressScanUnsupportedType(t *testing.T) {
	var address TaxAddress
	if err := address.Scan(42); err == nil {
		t.Fatal("expected error for unsupported source type")
	}
}
