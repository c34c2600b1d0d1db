package core

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func okRender(a NotificationAggregate) (string, string, error) {
	return "<p>" + a.Customer + "</p>", a.Customer, nil
}

func agg(customer, email string, invoices int) NotificationAggregate {
	return NotificationAggregate{
		Customer:      customer,
		CustomerEmail: email,
		TotalInvoices: invoices,
	}
}

func TestDispatchAllSucceed(t *testing.T) {
	var sent atomic.Int32
	sender := SenderFunc(func(ctx context.Context, msg Message) error {
		sent.Add(1)
		return nil
	})

	aggs := []NotificationAggregate{
		agg("A", "a@x.com", 1),
		agg("B", "b@x.com", 2),
		agg("C", "c@x.com", 3),
	}

	summary := NewDispatcher(sender, 2).Dispatch(context.Background(), aggs, okRender)

	if summary.Total != 3 || summary.Succeeded != 3 || summary.Failed != 0 {
		t.Errorf("summary = %+v", summary)
	}
	if len(summary.Results) != 3 {
		t.Fatalf("results = %d, want 3", len(summary.Results))
	}
	if sent.Load() != 3 {
		t.Errorf("sender invoked %d times, want 3", sent.Load())
	}
	if summary.BatchID == "" {
		t.Error("batch ID missing")
	}
}

// TestDispatchInvalidRecipient verifies that a recipient without "@" in a
// batch of five yields four successes and one failure, with no send
// attempted for the invalid address.
func TestDispatchInvalidRecipient(t *testing.T) {
	var mu sync.Mutex
	var recipients []string
	sender := SenderFunc(func(ctx context.Context, msg Message) error {
		mu.Lock()
		recipients = append(recipients, msg.To)
		mu.Unlock()
		return nil
	})

	aggs := []NotificationAggregate{
		agg("A", "a@x.com", 1),
		agg("B", "b@x.com", 1),
		agg("C", "not-an-address", 1),
		agg("D", "d@x.com", 1),
		agg("E", "e@x.com", 1),
	}

	summary := NewDispatcher(sender, 3).Dispatch(context.Background(), aggs, okRender)

	if summary.Succeeded != 4 || summary.Failed != 1 {
		t.Fatalf("summary = %d/%d, want 4/1", summary.Succeeded, summary.Failed)
	}
	for _, r := range summary.Results {
		if r.Recipient == "not-an-address" {
			if r.Success {
				t.Error("invalid recipient marked success")
			}
			if !strings.Contains(r.Error, "invalid recipient") {
				t.Errorf("error = %q", r.Error)
			}
		}
	}
	for _, to := range recipients {
		if to == "not-an-address" {
			t.Error("send attempted for invalid recipient")
		}
	}
}

// TestDispatchPartialFailure verifies one failing send never affects the
// other aggregates in the batch.
func TestDispatchPartialFailure(t *testing.T) {
	sender := SenderFunc(func(ctx context.Context, msg Message) error {
		if msg.To == "b@x.com" {
			return errors.New("smtp authentication failed")
		}
		return nil
	})

	aggs := []NotificationAggregate{
		agg("A", "a@x.com", 1),
		agg("B", "b@x.com", 1),
		agg("C", "c@x.com", 1),
	}

	summary := NewDispatcher(sender, 1).Dispatch(context.Background(), aggs, okRender)

	if summary.Succeeded != 2 || summary.Failed != 1 {
		t.Fatalf("summary = %d/%d, want 2/1", summary.Succeeded, summary.Failed)
	}
	for _, r := range summary.Results {
		if r.Recipient == "b@x.com" && !strings.Contains(r.Error, "authentication") {
			t.Errorf("failure detail lost: %+v", r)
		}
	}
}

// TestDispatchPanicContained converts a panicking transport into a failed
// result for that aggregate only.
func TestDispatchPanicContained(t *testing.T) {
	sender := SenderFunc(func(ctx context.Context, msg Message) error {
		if msg.To == "boom@x.com" {
			panic("transport exploded")
		}
		return nil
	})

	aggs := []NotificationAggregate{
		agg("A", "a@x.com", 1),
		agg("B", "boom@x.com", 1),
	}

	summary := NewDispatcher(sender, 2).Dispatch(context.Background(), aggs, okRender)

	if summary.Total != 2 || summary.Succeeded != 1 || summary.Failed != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	for _, r := range summary.Results {
		if r.Recipient == "boom@x.com" && !strings.Contains(r.Error, "unexpected failure") {
			t.Errorf("panic not converted: %+v", r)
		}
	}
}

// TestDispatchRenderErrorFails marks the aggregate failed without a send.
func TestDispatchRenderErrorFails(t *testing.T) {
	var sent atomic.Int32
	sender := SenderFunc(func(ctx context.Context, msg Message) error {
		sent.Add(1)
		return nil
	})
	badRender := func(a NotificationAggregate) (string, string, error) {
		return "", "", errors.New("template blew up")
	}

	summary := NewDispatcher(sender, 1).Dispatch(context.Background(),
		[]NotificationAggregate{agg("A", "a@x.com", 1)}, badRender)

	if summary.Failed != 1 || sent.Load() != 0 {
		t.Errorf("failed=%d sent=%d, want 1/0", summary.Failed, sent.Load())
	}
}

// TestDispatchConcurrencyBound verifies the worker pool never exceeds its
// configured parallelism.
func TestDispatchConcurrencyBound(t *testing.T) {
	const workers = 3
	var inFlight, peak atomic.Int32

	sender := SenderFunc(func(ctx context.Context, msg Message) error {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		inFlight.Add(-1)
		return nil
	})

	aggs := make([]NotificationAggregate, 12)
	for i := range aggs {
		aggs[i] = agg("C", "c@x.com", 1)
	}

	summary := NewDispatcher(sender, workers).Dispatch(context.Background(), aggs, okRender)

	if summary.Total != 12 || summary.Succeeded != 12 {
		t.Fatalf("summary = %+v", summary)
	}
	if p := peak.Load(); p > workers {
		t.Errorf("peak concurrency = %d, exceeds bound %d", p, workers)
	}
}

func TestDispatchSellerCC(t *testing.T) {
	var mu sync.Mutex
	var ccs []string
	sender := SenderFunc(func(ctx context.Context, msg Message) error {
		mu.Lock()
		ccs = append(ccs, msg.Cc)
		mu.Unlock()
		return nil
	})

	withSeller := agg("A", "a@x.com", 1)
	withSeller.SellerEmail = "juan@x.com"
	noSeller := agg("B", "b@x.com", 1)
	noSeller.SellerEmail = "N/A"

	NewDispatcher(sender, 1).Dispatch(context.Background(),
		[]NotificationAggregate{withSeller, noSeller}, okRender)

	mu.Lock()
	defer mu.Unlock()
	if len(ccs) != 2 {
		t.Fatalf("sends = %d", len(ccs))
	}
	// Worker count 1 preserves submission order.
	if ccs[0] != "juan@x.com" || ccs[1] != "" {
		t.Errorf("ccs = %v; seller CC only when the address is plausible", ccs)
	}
}

func TestDispatchEmptyBatch(t *testing.T) {
	summary := NewDispatcher(SenderFunc(func(context.Context, Message) error { return nil }), 3).
		Dispatch(context.Background(), nil, okRender)
	if summary.Total != 0 || len(summary.Results) != 0 {
		t.Errorf("summary = %+v", summary)
	}
}
