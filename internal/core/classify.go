package core

// classify.go decides which uploaded table is the customer directory and
// which is the receivables ledger. Uploads arrive in either order, so both
// tables are classified by marker substrings in the joined header line and
// the pair is resolved afterwards. A table carrying both marker sets is not
// a valid real-world upload and classifies unknown.

import (
	"fmt"
	"strings"
)

// SchemaError is a fatal input error: mandatory columns could not be
// resolved, or the uploaded pair could not be classified. Missing lists the
// logical fields that were not found, when applicable.
type SchemaError struct {
	Reason  string
	Missing []string
}

func (e *SchemaError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("%s: missing columns: %s", e.Reason, strings.Join(e.Missing, ", "))
	}
	return e.Reason
}

// Classify inspects a table's headers and reports its role. The result is
// total: exactly one of directory, ledger, or unknown.
func Classify(t Table) TableKind {
	parts := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		parts[i] = NormalizeHeader(h)
	}
	line := strings.Join(parts, " ")
	flat := stripSpaces(line)

	isDirectory := strings.Contains(line, "nit") &&
		strings.Contains(line, "cliente") &&
		(strings.Contains(line, "correo cliente") || strings.Contains(flat, "correocliente"))

	isLedger := (strings.Contains(line, "nombre tercero") || strings.Contains(flat, "nombretercero")) &&
		(strings.Contains(line, "numero fac") || strings.Contains(flat, "numerofac") || strings.Contains(line, " fac ")) &&
		strings.Contains(line, "vencimiento") &&
		(strings.Contains(line, "dias") || strings.Contains(line, "días")) &&
		strings.Contains(line, "saldo")

	switch {
	case isDirectory && isLedger:
		return KindUnknown
	case isDirectory:
		return KindDirectory
	case isLedger:
		return KindLedger
	default:
		return KindUnknown
	}
}

// ResolvePair classifies two uploaded tables and orders them into
// (directory, ledger). It fails with a SchemaError when both classify the
// same or either is inconclusive.
func ResolvePair(t1, t2 Table) (directory, ledger Table, err error) {
	k1 := Classify(t1)
	k2 := Classify(t2)

	switch {
	case k1 == KindDirectory && k2 == KindLedger:
		return t1, t2, nil
	case k1 == KindLedger && k2 == KindDirectory:
		return t2, t1, nil
	default:
		return Table{}, Table{}, &SchemaError{
			Reason: fmt.Sprintf("could not classify uploaded tables (file1: %s, file2: %s); expected one directory and one ledger", k1, k2),
		}
	}
}
