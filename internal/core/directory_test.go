package core

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadDirectory(t *testing.T) {
	table := directoryTable(
		cells("900123", "Acme", "Acme SAS", "a@x.com", "Juan", "juan@x.com", "Retail", "1000"),
		cells("900456", "Beta", "", "b@x.com", "Maria", "maria@x.com", "", "no-numeric"),
		cellsWithGaps("900789", "Gamma", "<nil>", "<nil>", "Juan", "juan2@x.com", "<nil>", "<nil>"),
	)

	dir, err := LoadDirectory(table)
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	if len(dir.Customers) != 2 {
		t.Fatalf("customers = %d, want 2 (Gamma has no email)", len(dir.Customers))
	}

	acme, ok := dir.Customers["acme"]
	if !ok {
		t.Fatal("acme not found under normalized key")
	}
	if acme.TaxID != "900123" || acme.Email != "a@x.com" || acme.CreditLimit != 1000 {
		t.Errorf("acme entry = %+v", acme)
	}
	if acme.CommercialName != "Acme SAS" || acme.Channel != "Retail" {
		t.Errorf("acme optional fields = %+v", acme)
	}

	// Unparsable credit limit downgrades to 0, the row survives.
	beta := dir.Customers["beta"]
	if beta.CreditLimit != 0 {
		t.Errorf("beta limit = %v, want 0 for unparsable value", beta.CreditLimit)
	}
	if beta.CommercialName != "N/A" {
		t.Errorf("beta commercial name = %q, want N/A", beta.CommercialName)
	}

	// Seller rows are independent of customer rows; later rows overwrite.
	if got := dir.Sellers["juan"]; got != "juan2@x.com" {
		t.Errorf("seller juan = %q, want juan2@x.com (last write wins)", got)
	}
	if len(dir.Sellers) != 2 {
		t.Errorf("sellers = %d, want 2", len(dir.Sellers))
	}
}

func TestLoadDirectoryDuplicateCustomerOverwrites(t *testing.T) {
	table := directoryTable(
		cells("1", "Acme", "", "first@x.com", "", "", "", "100"),
		cells("2", " ACME ", "", "second@x.com", "", "", "", "200"),
	)

	dir, err := LoadDirectory(table)
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(dir.Customers) != 1 {
		t.Fatalf("customers = %d, want 1", len(dir.Customers))
	}
	entry := dir.Customers["acme"]
	if entry.Email != "second@x.com" || entry.CreditLimit != 200 {
		t.Errorf("entry = %+v, want the later row", entry)
	}
}

func TestLoadDirectoryMissingMandatoryColumns(t *testing.T) {
	table := Table{Headers: []string{"Nit", "Vendedor", "Cupo"}}

	_, err := LoadDirectory(table)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("want SchemaError, got %v", err)
	}
	if len(schemaErr.Missing) != 2 {
		t.Errorf("missing = %v, want both Cliente and Correo cliente", schemaErr.Missing)
	}
	if !strings.Contains(err.Error(), "Correo cliente") {
		t.Errorf("error should list missing fields: %v", err)
	}
}
