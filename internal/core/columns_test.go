package core

import "testing"

func TestResolveColumnCaseAndSpacing(t *testing.T) {
	// Every spelling variant of the same header must resolve identically.
	variants := []string{"Cliente", "cliente", " Cliente ", "CLIENTE"}

	for _, v := range variants {
		headers := []string{"Nit", v, "Saldo"}
		idx, ok := ResolveColumn(headers, "Cliente")
		if !ok {
			t.Fatalf("ResolveColumn(%q) not found", v)
		}
		if idx != 1 {
			t.Errorf("ResolveColumn(%q) = %d, want 1", v, idx)
		}
	}
}

func TestResolveColumn(t *testing.T) {
	tests := []struct {
		name       string
		headers    []string
		candidates []string
		wantIdx    int
		wantOK     bool
	}{
		{
			name:       "exact after normalization",
			headers:    []string{"Nit", "Correo  cliente"},
			candidates: []string{"Correo cliente"},
			wantIdx:    1,
			wantOK:     true,
		},
		{
			name:       "whitespace insensitive",
			headers:    []string{"Nit", "CorreoCliente"},
			candidates: []string{"Correo cliente"},
			wantIdx:    1,
			wantOK:     true,
		},
		{
			name:       "substring header contains candidate",
			headers:    []string{"Nit", "Saldo total vencido"},
			candidates: []string{"Saldo"},
			wantIdx:    1,
			wantOK:     true,
		},
		{
			name:       "substring candidate contains header",
			headers:    []string{"Nit", "Vencimiento"},
			candidates: []string{"Fecha Vencimiento"},
			wantIdx:    1,
			wantOK:     true,
		},
		{
			name:       "first candidate preferred",
			headers:    []string{"Factura", "Numero FAC"},
			candidates: []string{"Numero FAC", "Factura"},
			wantIdx:    1,
			wantOK:     true,
		},
		{
			name:       "exact beats earlier substring hit",
			headers:    []string{"Cliente comercial", "Cliente"},
			candidates: []string{"Cliente"},
			wantIdx:    1,
			wantOK:     true,
		},
		{
			name:       "not found",
			headers:    []string{"Nit", "Saldo"},
			candidates: []string{"Vencimiento"},
			wantOK:     false,
		},
		{
			name:       "empty header never matches",
			headers:    []string{"", "Cupo"},
			candidates: []string{"Cupo"},
			wantIdx:    1,
			wantOK:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := ResolveColumn(tt.headers, tt.candidates...)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && idx != tt.wantIdx {
				t.Errorf("idx = %d, want %d", idx, tt.wantIdx)
			}
		})
	}
}

// TestResolveColumnAdversarial documents the known precision/recall
// trade-off of substring matching: a short generic candidate latches onto
// the first header containing it.
func TestResolveColumnAdversarial(t *testing.T) {
	headers := []string{"Dias vencidos", "Saldo en dias"}
	idx, ok := ResolveColumn(headers, "Dias")
	if !ok {
		t.Fatal("expected a substring match")
	}
	if idx != 0 {
		t.Errorf("idx = %d, want first substring hit 0", idx)
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ACME ", "acme"},
		{"  Acme S.A.S  ", "acme s.a.s"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeHeaderCollapsesSpaces(t *testing.T) {
	if got := NormalizeHeader("  Correo    cliente "); got != "correo cliente" {
		t.Errorf("NormalizeHeader = %q, want %q", got, "correo cliente")
	}
}
