// Package core provides the business logic for reconciling a customer
// directory spreadsheet against an accounts-receivable aging ledger and
// dispatching payment-reminder emails. This package has no HTTP or SMTP
// dependencies and can be driven by any frontend.
package core

import "context"

// Cell is a single spreadsheet cell. Valid is false when the cell is
// absent from the source row, which is distinct from a present empty
// string.
type Cell struct {
	Value string
	Valid bool
}

// Table is a decoded tabular dataset: an ordered header row plus data rows.
// Rows may be shorter than Headers; missing trailing cells are treated as
// invalid.
type Table struct {
	Headers []string
	Rows    [][]Cell
}

// CellAt returns the cell at the given column index, or an invalid cell
// when the row does not reach that column.
func CellAt(row []Cell, idx int) Cell {
	if idx < 0 || idx >= len(row) {
		return Cell{}
	}
	return row[idx]
}

// TableKind is the detected role of an uploaded table.
type TableKind string

const (
	KindDirectory TableKind = "directory"
	KindLedger    TableKind = "ledger"
	KindUnknown   TableKind = "unknown"
)

// Status classifies an invoice by its age relative to the due date.
type Status string

const (
	StatusOverdue Status = "overdue"  // due date already passed
	StatusDueSoon Status = "due-soon" // due within the next 5 days
	StatusNotDue  Status = "not-due"  // due more than 5 days out
)

// StatusWindowPolicy controls which age bands the reconciler emits.
type StatusWindowPolicy string

const (
	// WindowAll keeps every invoice regardless of age.
	WindowAll StatusWindowPolicy = "all"

	// WindowDueOrOverdue drops not-due invoices entirely.
	WindowDueOrOverdue StatusWindowPolicy = "due-or-overdue-only"
)

// GroupingPolicy controls how invoice records consolidate into notifications.
type GroupingPolicy string

const (
	// GroupPerCustomer sends one email per (customer, email) pair covering
	// every status band.
	GroupPerCustomer GroupingPolicy = "per-customer"

	// GroupPerCustomerStatus splits each status band into its own email.
	GroupPerCustomerStatus GroupingPolicy = "per-customer-and-status"
)

// DirectoryEntry is one customer from the directory spreadsheet.
// "N/A" marks fields the source row did not provide.
type DirectoryEntry struct {
	TaxID          string
	Name           string
	CommercialName string
	Email          string
	Channel        string
	CreditLimit    float64
}

// Directory holds the lookup maps built from a directory table. Both maps
// are keyed by normalized name (trim + casefold) and are read-only once
// LoadDirectory returns.
type Directory struct {
	Customers map[string]DirectoryEntry
	Sellers   map[string]string // normalized seller name -> email
}

// InvoiceRecord is one open invoice joined against the directory.
// Balance carries both the numeric value (for arithmetic) and a formatted
// string (for display); the date fields are pre-formatted dd/mm/yyyy.
type InvoiceRecord struct {
	Customer      string  `json:"customer"`
	CustomerEmail string  `json:"customerEmail"`
	Seller        string  `json:"seller"`
	SellerEmail   string  `json:"sellerEmail"`
	Branch        string  `json:"branch"`
	InvoiceNumber string  `json:"invoiceNumber"`
	IssueDate     string  `json:"issueDate"`
	DueDate       string  `json:"dueDate"`
	AgeDays       int     `json:"ageDays"`
	Balance       float64 `json:"balance"`
	BalanceFmt    string  `json:"balanceFormatted"`
	Status        Status  `json:"status"`
	CreditLimit   float64 `json:"creditLimit"`
}

// NotificationAggregate is one consolidated reminder: every invoice that
// shares a grouping key, plus derived totals. Aggregates are never mutated
// after Group returns.
type NotificationAggregate struct {
	Customer      string          `json:"customer"`
	CustomerEmail string          `json:"customerEmail"`
	Seller        string          `json:"seller"`
	SellerEmail   string          `json:"sellerEmail"`
	Branch        string          `json:"branch"`
	Status        Status          `json:"status,omitempty"` // set only under per-customer-and-status grouping
	Overdue       []InvoiceRecord `json:"overdue"`
	DueSoon       []InvoiceRecord `json:"dueSoon"`
	NotDue        []InvoiceRecord `json:"notDue"`

	TotalInvoices   int     `json:"totalInvoices"`
	TotalBalance    float64 `json:"totalBalance"`
	CreditLimit     float64 `json:"creditLimit"`
	AvailableCredit float64 `json:"availableCredit"` // may be negative (over limit)
}

// DispatchResult is the outcome of sending one aggregate.
type DispatchResult struct {
	Recipient string `json:"recipient"`
	Customer  string `json:"customer"`
	Invoices  int    `json:"invoices"`
	Overdue   int    `json:"overdue"`
	DueSoon   int    `json:"dueSoon"`
	NotDue    int    `json:"notDue"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// DispatchSummary is the result ledger for one dispatch batch. Results
// appear in completion order, not submission order.
type DispatchSummary struct {
	BatchID   string           `json:"batchId"`
	Total     int              `json:"total"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
	Results   []DispatchResult `json:"results"`
}

// Diagnostics reports per-reason drop counts from a reconciliation run.
// Dropped rows never fail the run; they only show up here.
type Diagnostics struct {
	Accepted          int      `json:"accepted"`
	MissingName       int      `json:"missingName"`
	UnmatchedCustomer int      `json:"unmatchedCustomer"`
	EmptyDueDate      int      `json:"emptyDueDate"`
	ZeroBalance       int      `json:"zeroBalance"`
	BadDueDate        int      `json:"badDueDate"`
	OutsideWindow     int      `json:"outsideWindow"`
	Overdue           int      `json:"overdue"`
	DueSoon           int      `json:"dueSoon"`
	NotDue            int      `json:"notDue"`
	UnmatchedNames    []string `json:"unmatchedNames,omitempty"`
}

// Message is the payload handed to a Sender for one notification.
type Message struct {
	To       string
	Cc       string // optional; empty means no CC
	Subject  string
	HTMLBody string
	TextBody string
}

// Sender is the message-transport capability the dispatch engine depends
// on. Implementations must be safe for concurrent use; each Send is a
// single connect-authenticate-transmit-close cycle.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, msg Message) error

func (f SenderFunc) Send(ctx context.Context, msg Message) error { return f(ctx, msg) }

// RenderFunc produces the HTML and plain-text bodies for one aggregate.
// It must be a pure function of the aggregate; the dispatch engine invokes
// it exactly once per aggregate before submission.
type RenderFunc func(a NotificationAggregate) (htmlBody, textBody string, err error)
