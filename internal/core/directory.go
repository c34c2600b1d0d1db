package core

// directory.go builds the customer and seller lookup maps from a
// directory-classified table. Both maps are keyed by normalized name and
// follow a last-write-wins rule on duplicates, matching how the upstream
// exports repeat customer rows per seller assignment.

import (
	"log/slog"
	"strings"
)

// Candidate header names per logical directory field, most-preferred first.
var (
	taxIDCandidates          = []string{"Nit", "NIT"}
	customerCandidates       = []string{"Cliente", "cliente"}
	commercialNameCandidates = []string{"Nombre comercial", "Nombrecomercial"}
	customerEmailCandidates  = []string{"Correo cliente", "Correocliente", "Email cliente"}
	sellerCandidates         = []string{"Vendedor", "vendedor"}
	sellerEmailCandidates    = []string{"Correo vendedor", "Correovendedor", "Email vendedor"}
	channelCandidates        = []string{"Canal", "canal"}
	creditLimitCandidates    = []string{"Cupo", "cupo", "Cupo de crédito", "Cupo de credito", "Cupo credito"}
)

// cellString returns the trimmed value of a cell, or "" when absent.
func cellString(row []Cell, idx int, ok bool) string {
	if !ok {
		return ""
	}
	c := CellAt(row, idx)
	if !c.Valid {
		return ""
	}
	return strings.TrimSpace(c.Value)
}

// orNA substitutes the "N/A" sentinel for empty values.
func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// LoadDirectory builds the customer and seller maps from a
// directory-classified table.
//
// A customer entry is recorded only when both name and email are present;
// a seller entry only when both seller name and seller email are present.
// Credit-limit parse failures downgrade to a zero limit rather than
// dropping the row. Missing mandatory customer or customer-email columns
// is a SchemaError naming the missing fields.
func LoadDirectory(t Table) (Directory, error) {
	custIdx, custOK := ResolveColumn(t.Headers, customerCandidates...)
	emailIdx, emailOK := ResolveColumn(t.Headers, customerEmailCandidates...)

	var missing []string
	if !custOK {
		missing = append(missing, "Cliente")
	}
	if !emailOK {
		missing = append(missing, "Correo cliente")
	}
	if len(missing) > 0 {
		return Directory{}, &SchemaError{Reason: "directory table", Missing: missing}
	}

	taxIdx, taxOK := ResolveColumn(t.Headers, taxIDCandidates...)
	commIdx, commOK := ResolveColumn(t.Headers, commercialNameCandidates...)
	chanIdx, chanOK := ResolveColumn(t.Headers, channelCandidates...)
	limitIdx, limitOK := ResolveColumn(t.Headers, creditLimitCandidates...)
	sellerIdx, sellerOK := ResolveColumn(t.Headers, sellerCandidates...)
	sellerEmailIdx, sellerEmailOK := ResolveColumn(t.Headers, sellerEmailCandidates...)

	if !limitOK {
		slog.Warn("directory has no credit limit column, defaulting limits to 0")
	}

	dir := Directory{
		Customers: make(map[string]DirectoryEntry),
		Sellers:   make(map[string]string),
	}

	for _, row := range t.Rows {
		name := cellString(row, custIdx, true)
		email := cellString(row, emailIdx, true)

		if name != "" && email != "" {
			key := NormalizeName(name)
			limit := 0.0
			if raw := cellString(row, limitIdx, limitOK); raw != "" {
				v, ok := ParseAmount(raw)
				if !ok {
					slog.Warn("invalid credit limit, using 0", "customer", name, "value", raw)
				} else {
					limit = v
				}
			}
			dir.Customers[key] = DirectoryEntry{
				TaxID:          orNA(cellString(row, taxIdx, taxOK)),
				Name:           name,
				CommercialName: orNA(cellString(row, commIdx, commOK)),
				Email:          email,
				Channel:        orNA(cellString(row, chanIdx, chanOK)),
				CreditLimit:    limit,
			}
		}

		if sellerOK && sellerEmailOK {
			seller := cellString(row, sellerIdx, true)
			sellerEmail := cellString(row, sellerEmailIdx, true)
			if seller != "" && sellerEmail != "" {
				dir.Sellers[NormalizeName(seller)] = sellerEmail
			}
		}
	}

	slog.Info("directory loaded", "customers", len(dir.Customers), "sellers", len(dir.Sellers))
	return dir, nil
}
