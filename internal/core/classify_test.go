package core

import (
	"errors"
	"strings"
	"testing"
)

func headersOnly(headers ...string) Table {
	return Table{Headers: headers}
}

func TestClassify(t *testing.T) {
	directory := headersOnly("Nit", "Cliente", "Correo cliente", "Vendedor", "Cupo")
	ledger := headersOnly("Nombre tercero", "Numero FAC", "Emision", "Vencimiento", "Dias", "Saldo")

	tests := []struct {
		name  string
		table Table
		want  TableKind
	}{
		{"directory", directory, KindDirectory},
		{"ledger", ledger, KindLedger},
		{
			name:  "directory with compact email header",
			table: headersOnly("NIT", "CLIENTE", "CorreoCliente"),
			want:  KindDirectory,
		},
		{
			name:  "ledger with accented dias",
			table: headersOnly("Nombre tercero", "Numero FAC", "Vencimiento", "Días", "Saldo"),
			want:  KindLedger,
		},
		{
			name:  "neither",
			table: headersOnly("Producto", "Cantidad", "Precio"),
			want:  KindUnknown,
		},
		{
			name:  "empty table",
			table: Table{},
			want:  KindUnknown,
		},
		{
			// Both marker sets present is not a valid real-world upload.
			name:  "both marker sets",
			table: headersOnly("Nit", "Cliente", "Correo cliente", "Nombre tercero", "Numero FAC", "Vencimiento", "Dias", "Saldo"),
			want:  KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.table); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolvePair(t *testing.T) {
	directory := headersOnly("Nit", "Cliente", "Correo cliente")
	ledger := headersOnly("Nombre tercero", "Numero FAC", "Vencimiento", "Dias", "Saldo")
	junk := headersOnly("Producto", "Cantidad")

	t.Run("in order", func(t *testing.T) {
		d, l, err := ResolvePair(directory, ledger)
		if err != nil {
			t.Fatalf("ResolvePair: %v", err)
		}
		if Classify(d) != KindDirectory || Classify(l) != KindLedger {
			t.Error("pair resolved to the wrong tables")
		}
	})

	t.Run("reversed", func(t *testing.T) {
		d, l, err := ResolvePair(ledger, directory)
		if err != nil {
			t.Fatalf("ResolvePair: %v", err)
		}
		if Classify(d) != KindDirectory || Classify(l) != KindLedger {
			t.Error("pair resolved to the wrong tables")
		}
	})

	t.Run("both directories", func(t *testing.T) {
		_, _, err := ResolvePair(directory, directory)
		var schemaErr *SchemaError
		if !errors.As(err, &schemaErr) {
			t.Fatalf("want SchemaError, got %v", err)
		}
		if !strings.Contains(err.Error(), "directory") {
			t.Errorf("error should name both classifications: %v", err)
		}
	})

	t.Run("neither classifies", func(t *testing.T) {
		_, _, err := ResolvePair(junk, junk)
		if err == nil {
			t.Fatal("want error for unclassifiable pair")
		}
	})
}
