package core

// reconcile.go joins ledger rows against the directory maps and emits the
// flat InvoiceRecord list. Each row resolves to a tagged outcome — accepted
// or dropped-for-a-reason — so a bad row never aborts the run; it only
// increments a diagnostic counter. Classification uses the ledger's own due
// date rather than its pre-computed age column, which is frequently stale
// relative to the processing date.

import (
	"log/slog"
	"time"
)

// Candidate header names per logical ledger field.
var (
	thirdPartyCandidates = []string{"Nombre tercero", "Nombretercero", "Cliente"}
	invoiceNoCandidates  = []string{"Numero FAC", "NumeroFAC", "Factura", "Numero Factura"}
	issueDateCandidates  = []string{"Emision", "Emisión", "Fecha Emision", "FechaEmision"}
	dueDateCandidates    = []string{"Vencimiento", "Fecha Vencimiento", "FechaVencimiento"}
	balanceCandidates    = []string{"Saldo", "saldo"}
	branchCandidates     = []string{"Local", "local", "Sucursal", "sucursal"}
)

// dropReason tags why a ledger row was rejected.
type dropReason int

const (
	dropNone dropReason = iota
	dropMissingName
	dropUnmatchedCustomer
	dropEmptyDueDate
	dropZeroBalance
	dropBadDueDate
	dropOutsideWindow
)

// ledgerColumns holds the resolved column indexes for one ledger table.
type ledgerColumns struct {
	thirdParty int
	invoiceNo  int
	issueDate  int
	issueOK    bool
	dueDate    int
	balance    int
	seller     int
	sellerOK   bool
	branch     int
	branchOK   bool
}

func resolveLedgerColumns(headers []string) (ledgerColumns, error) {
	var cols ledgerColumns
	var missing []string
	var ok bool

	if cols.thirdParty, ok = ResolveColumn(headers, thirdPartyCandidates...); !ok {
		missing = append(missing, "Nombre tercero")
	}
	if cols.invoiceNo, ok = ResolveColumn(headers, invoiceNoCandidates...); !ok {
		missing = append(missing, "Numero FAC")
	}
	if cols.dueDate, ok = ResolveColumn(headers, dueDateCandidates...); !ok {
		missing = append(missing, "Vencimiento")
	}
	if cols.balance, ok = ResolveColumn(headers, balanceCandidates...); !ok {
		missing = append(missing, "Saldo")
	}
	if len(missing) > 0 {
		return cols, &SchemaError{Reason: "ledger table", Missing: missing}
	}

	cols.issueDate, cols.issueOK = ResolveColumn(headers, issueDateCandidates...)
	cols.seller, cols.sellerOK = ResolveColumn(headers, sellerCandidates...)
	cols.branch, cols.branchOK = ResolveColumn(headers, branchCandidates...)
	return cols, nil
}

// ClassifyAge maps an age in days (due date minus today; negative means
// overdue) to a status band.
func ClassifyAge(ageDays int) Status {
	switch {
	case ageDays < 0:
		return StatusOverdue
	case ageDays <= 5:
		return StatusDueSoon
	default:
		return StatusNotDue
	}
}

// Reconcile joins a ledger-classified table against the directory maps and
// returns the accepted InvoiceRecords plus per-reason drop diagnostics.
// The reference date is supplied by the caller, so identical inputs yield
// identical output regardless of wall clock.
func Reconcile(t Table, dir Directory, today time.Time, window StatusWindowPolicy) ([]InvoiceRecord, Diagnostics, error) {
	cols, err := resolveLedgerColumns(t.Headers)
	if err != nil {
		return nil, Diagnostics{}, err
	}

	today = DateOnly(today)
	var records []InvoiceRecord
	var diag Diagnostics

	for _, row := range t.Rows {
		rec, reason := processRow(row, cols, dir, today, window)
		switch reason {
		case dropNone:
			records = append(records, rec)
			diag.Accepted++
			switch rec.Status {
			case StatusOverdue:
				diag.Overdue++
			case StatusDueSoon:
				diag.DueSoon++
			case StatusNotDue:
				diag.NotDue++
			}
		case dropMissingName:
			diag.MissingName++
		case dropUnmatchedCustomer:
			diag.UnmatchedCustomer++
			diag.UnmatchedNames = append(diag.UnmatchedNames, cellString(row, cols.thirdParty, true))
		case dropEmptyDueDate:
			diag.EmptyDueDate++
		case dropZeroBalance:
			diag.ZeroBalance++
		case dropBadDueDate:
			diag.BadDueDate++
		case dropOutsideWindow:
			diag.OutsideWindow++
		}
	}

	slog.Info("ledger reconciled",
		"accepted", diag.Accepted,
		"overdue", diag.Overdue,
		"due_soon", diag.DueSoon,
		"not_due", diag.NotDue,
		"unmatched_customer", diag.UnmatchedCustomer,
		"empty_due_date", diag.EmptyDueDate,
		"zero_balance", diag.ZeroBalance,
		"bad_due_date", diag.BadDueDate,
	)
	return records, diag, nil
}

// processRow turns one ledger row into a tagged outcome. Drop checks run in
// the same order the diagnostics report them: identity first, then due
// date presence, then balance, then date arithmetic.
func processRow(row []Cell, cols ledgerColumns, dir Directory, today time.Time, window StatusWindowPolicy) (InvoiceRecord, dropReason) {
	name := cellString(row, cols.thirdParty, true)
	if name == "" {
		return InvoiceRecord{}, dropMissingName
	}

	entry, ok := dir.Customers[NormalizeName(name)]
	if !ok {
		// No partial or fuzzy fallback at this stage: an unknown name is
		// dropped and surfaced through diagnostics.
		return InvoiceRecord{}, dropUnmatchedCustomer
	}

	dueRaw := cellString(row, cols.dueDate, true)
	if dueRaw == "" {
		return InvoiceRecord{}, dropEmptyDueDate
	}

	balance, ok := ParseAmount(cellString(row, cols.balance, true))
	if !ok || balance == 0 {
		return InvoiceRecord{}, dropZeroBalance
	}

	due, ok := ParseDate(dueRaw)
	if !ok {
		return InvoiceRecord{}, dropBadDueDate
	}
	ageDays := DaysBetween(today, due)
	status := ClassifyAge(ageDays)

	if window == WindowDueOrOverdue && status == StatusNotDue {
		return InvoiceRecord{}, dropOutsideWindow
	}

	seller := cellString(row, cols.seller, cols.sellerOK)
	sellerEmail := ""
	if seller != "" {
		sellerEmail = dir.Sellers[NormalizeName(seller)]
	}

	issueDate := "N/A"
	if raw := cellString(row, cols.issueDate, cols.issueOK); raw != "" {
		if issued, ok := ParseDate(raw); ok {
			issueDate = FormatDate(issued)
		} else {
			issueDate = raw
		}
	}

	invoiceNo := cellString(row, cols.invoiceNo, true)

	return InvoiceRecord{
		Customer:      entry.Name,
		CustomerEmail: entry.Email,
		Seller:        orNA(seller),
		SellerEmail:   orNA(sellerEmail),
		Branch:        orNA(cellString(row, cols.branch, cols.branchOK)),
		InvoiceNumber: orNA(invoiceNo),
		IssueDate:     issueDate,
		DueDate:       FormatDate(due),
		AgeDays:       ageDays,
		Balance:       balance,
		BalanceFmt:    FormatCurrency(balance),
		Status:        status,
		CreditLimit:   entry.CreditLimit,
	}, dropNone
}
