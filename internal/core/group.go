package core

// group.go consolidates flat invoice records into one notification per
// recipient unit. The grouping key is (customer, email) or
// (customer, email, status) depending on policy; both variants share this
// single pass. Output order is first-seen key order, never a sort.

import "log/slog"

// Group consolidates records into notification aggregates under the given
// policy. The first record for a key seeds the aggregate shell (seller,
// branch, credit limit); every later record with the same key appends to
// its status bucket and updates the running totals. Available credit is
// limit minus total balance and is reported even when negative — an
// over-limit customer is surfaced, not clamped.
func Group(records []InvoiceRecord, policy GroupingPolicy) []NotificationAggregate {
	index := make(map[string]int)
	var aggs []NotificationAggregate

	for _, rec := range records {
		key := rec.Customer + "|" + rec.CustomerEmail
		if policy == GroupPerCustomerStatus {
			key += "|" + string(rec.Status)
		}

		i, seen := index[key]
		if !seen {
			a := NotificationAggregate{
				Customer:      rec.Customer,
				CustomerEmail: rec.CustomerEmail,
				Seller:        rec.Seller,
				SellerEmail:   rec.SellerEmail,
				Branch:        rec.Branch,
				CreditLimit:   rec.CreditLimit,
			}
			if policy == GroupPerCustomerStatus {
				a.Status = rec.Status
			}
			aggs = append(aggs, a)
			i = len(aggs) - 1
			index[key] = i
		}

		a := &aggs[i]
		switch rec.Status {
		case StatusOverdue:
			a.Overdue = append(a.Overdue, rec)
		case StatusDueSoon:
			a.DueSoon = append(a.DueSoon, rec)
		case StatusNotDue:
			a.NotDue = append(a.NotDue, rec)
		}
		a.TotalInvoices++
		a.TotalBalance += rec.Balance
	}

	for i := range aggs {
		aggs[i].AvailableCredit = aggs[i].CreditLimit - aggs[i].TotalBalance
	}

	slog.Info("notifications grouped",
		"records", len(records),
		"aggregates", len(aggs),
		"policy", string(policy),
	)
	return aggs
}

// SplitBatch splits aggregates into a first batch of at most limit entries
// and the remainder. Mail providers cap daily volume, so oversized runs go
// out in two waves.
func SplitBatch(aggs []NotificationAggregate, limit int) (first, rest []NotificationAggregate) {
	if limit <= 0 || len(aggs) <= limit {
		return aggs, nil
	}
	return aggs[:limit], aggs[limit:]
}
