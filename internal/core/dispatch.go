package core

// dispatch.go fans notification aggregates out to the mail transport.
// A bounded worker pool (SMTP providers throttle connections, so the bound
// is small) runs one blocking send per aggregate and reports one
// DispatchResult each through a completion channel. One recipient's
// failure — bad address, auth error, timeout, even a panic inside the
// transport — never aborts or delays the others.

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the default dispatch concurrency.
const DefaultWorkers = 3

// Dispatcher sends notification aggregates through a Sender with bounded
// parallelism.
type Dispatcher struct {
	sender  Sender
	workers int
}

// NewDispatcher creates a dispatcher. A non-positive worker count falls
// back to DefaultWorkers.
func NewDispatcher(sender Sender, workers int) *Dispatcher {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Dispatcher{sender: sender, workers: workers}
}

// Dispatch renders and sends every aggregate, returning exactly one result
// per aggregate. Results arrive in completion order. The batch is complete
// only when all submitted aggregates have produced a result; there is no
// cross-send cancellation.
func (d *Dispatcher) Dispatch(ctx context.Context, aggs []NotificationAggregate, render RenderFunc) DispatchSummary {
	summary := DispatchSummary{
		BatchID: uuid.New().String(),
		Total:   len(aggs),
	}
	if len(aggs) == 0 {
		summary.Results = []DispatchResult{}
		return summary
	}

	results := make(chan DispatchResult, len(aggs))

	var g errgroup.Group
	g.SetLimit(d.workers)
	for _, agg := range aggs {
		agg := agg
		g.Go(func() error {
			results <- d.sendOne(ctx, agg, render)
			return nil
		})
	}
	g.Wait()
	close(results)

	for res := range results {
		if res.Success {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
		summary.Results = append(summary.Results, res)
	}

	slog.Info("dispatch complete",
		"batch_id", summary.BatchID,
		"total", summary.Total,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
	)
	return summary
}

// sendOne produces the DispatchResult for a single aggregate. Any panic
// from the renderer or transport is converted to a failed result here so
// it cannot take down the batch.
func (d *Dispatcher) sendOne(ctx context.Context, agg NotificationAggregate, render RenderFunc) (res DispatchResult) {
	res = DispatchResult{
		Recipient: agg.CustomerEmail,
		Customer:  agg.Customer,
		Invoices:  agg.TotalInvoices,
		Overdue:   len(agg.Overdue),
		DueSoon:   len(agg.DueSoon),
		NotDue:    len(agg.NotDue),
	}

	defer func() {
		if r := recover(); r != nil {
			res.Success = false
			res.Error = fmt.Sprintf("unexpected failure: %v", r)
			slog.Error("send panicked", "recipient", agg.CustomerEmail, "panic", r)
		}
	}()

	if agg.CustomerEmail == "" || !strings.Contains(agg.CustomerEmail, "@") {
		res.Error = "invalid recipient address"
		return res
	}

	htmlBody, textBody, err := render(agg)
	if err != nil {
		res.Error = fmt.Sprintf("render notification: %v", err)
		return res
	}

	cc := ""
	if strings.Contains(agg.SellerEmail, "@") {
		cc = agg.SellerEmail
	}

	msg := Message{
		To:       agg.CustomerEmail,
		Cc:       cc,
		Subject:  fmt.Sprintf("Estado de Facturas - %d facturas - %s", agg.TotalInvoices, agg.Customer),
		HTMLBody: htmlBody,
		TextBody: textBody,
	}

	if err := d.sender.Send(ctx, msg); err != nil {
		res.Error = err.Error()
		slog.Warn("send failed", "recipient", agg.CustomerEmail, "error", err)
		return res
	}

	res.Success = true
	return res
}
