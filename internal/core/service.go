package core

// service.go is the façade the HTTP layer drives: classify the uploaded
// pair, load the directory, reconcile the ledger, and later group-and-send
// a previously returned record list. The service holds no state between
// runs; everything is scoped to one request.

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Options are the explicit policy knobs for a Service. Zero values fall
// back to the documented defaults.
type Options struct {
	StatusWindow StatusWindowPolicy // default WindowAll
	Grouping     GroupingPolicy     // default GroupPerCustomer
	Workers      int                // default DefaultWorkers
	BatchLimit   int                // 0 disables batch splitting
}

func (o Options) withDefaults() Options {
	if o.StatusWindow == "" {
		o.StatusWindow = WindowAll
	}
	if o.Grouping == "" {
		o.Grouping = GroupPerCustomer
	}
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	return o
}

// Service runs the reconcile-and-dispatch pipeline.
type Service struct {
	opts       Options
	dispatcher *Dispatcher
	render     RenderFunc
}

// NewService creates a Service. The sender and renderer are injected so
// tests can run the full pipeline against stubs.
func NewService(opts Options, sender Sender, render RenderFunc) *Service {
	opts = opts.withDefaults()
	return &Service{
		opts:       opts,
		dispatcher: NewDispatcher(sender, opts.Workers),
		render:     render,
	}
}

// Stats counts accepted records per status band.
type Stats struct {
	Total   int `json:"total"`
	Overdue int `json:"overdue"`
	DueSoon int `json:"dueSoon"`
	NotDue  int `json:"notDue"`
}

// ReconcileResult is the outcome of one reconciliation run.
type ReconcileResult struct {
	RunID       string          `json:"runId"`
	Records     []InvoiceRecord `json:"records"`
	Stats       Stats           `json:"stats"`
	Diagnostics Diagnostics     `json:"diagnostics"`
}

// Reconcile classifies the uploaded pair (accepted in either order),
// builds the directory maps, and reconciles the ledger against them.
// today supplies the reference date for age arithmetic.
func (s *Service) Reconcile(ctx context.Context, t1, t2 Table, today time.Time) (*ReconcileResult, error) {
	dirTable, ledgerTable, err := ResolvePair(t1, t2)
	if err != nil {
		return nil, err
	}

	dir, err := LoadDirectory(dirTable)
	if err != nil {
		return nil, err
	}

	records, diag, err := Reconcile(ledgerTable, dir, today, s.opts.StatusWindow)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []InvoiceRecord{}
	}

	result := &ReconcileResult{
		RunID:   uuid.New().String(),
		Records: records,
		Stats: Stats{
			Total:   diag.Accepted,
			Overdue: diag.Overdue,
			DueSoon: diag.DueSoon,
			NotDue:  diag.NotDue,
		},
		Diagnostics: diag,
	}

	slog.Info("reconciliation run complete",
		"run_id", result.RunID,
		"records", result.Stats.Total,
	)
	return result, nil
}

// ErrNoRecords is returned by Dispatch when the record list is empty.
var ErrNoRecords = errors.New("no records to dispatch")

// Dispatch groups a previously returned record list and sends one message
// per aggregate. When a batch limit is configured, only the first batch is
// sent and the remainder is reported in the summary counts' shortfall;
// callers re-submit the rest on the next run.
func (s *Service) Dispatch(ctx context.Context, records []InvoiceRecord) (DispatchSummary, error) {
	if len(records) == 0 {
		return DispatchSummary{}, ErrNoRecords
	}

	aggs := Group(records, s.opts.Grouping)

	if s.opts.BatchLimit > 0 {
		var rest []NotificationAggregate
		aggs, rest = SplitBatch(aggs, s.opts.BatchLimit)
		if len(rest) > 0 {
			slog.Warn("batch limit reached, deferring remainder",
				"sending", len(aggs),
				"deferred", len(rest),
			)
		}
	}

	return s.dispatcher.Dispatch(ctx, aggs, s.render), nil
}
