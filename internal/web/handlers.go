package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/grupolom/cartera/internal/core"
	"github.com/grupolom/cartera/internal/excel"
	"github.com/grupolom/cartera/internal/logging"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReconcile accepts the customer directory and the aging ledger as
// multipart uploads (file1 and file2, in either order) and returns the
// reconciled record list with per-status stats and drop diagnostics.
func (s *Server) handleReconcile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 2*s.cfg.Upload.MaxFileSize)
	if err := r.ParseMultipartForm(s.cfg.Upload.MaxFileSize); err != nil {
		s.respondError(w, r, fmt.Errorf("parse upload form: %w", err), http.StatusBadRequest)
		return
	}

	t1, err := s.readUpload(r, "file1")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	t2, err := s.readUpload(r, "file2")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	result, err := s.service.Reconcile(r.Context(), t1, t2, time.Now())
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	logging.FromContext(r.Context()).Info("reconcile request served",
		"run_id", result.RunID,
		"records", result.Stats.Total,
	)
	writeJSON(w, http.StatusOK, result)
}

// readUpload decodes one uploaded workbook into a table.
func (s *Server) readUpload(r *http.Request, field string) (core.Table, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return core.Table{}, fmt.Errorf("no file provided in field %s", field)
	}
	defer file.Close()

	table, err := excel.Read(file, excel.Options{
		LedgerSheet:     s.cfg.Reconcile.LedgerSheet,
		LedgerHeaderRow: s.cfg.Reconcile.LedgerHeaderRow,
	})
	if err != nil {
		return core.Table{}, fmt.Errorf("decode %s: %w", field, err)
	}
	return table, nil
}

// dispatchRequest is the payload for POST /api/dispatch: the record list a
// previous reconcile run returned, usually after the operator reviewed it.
type dispatchRequest struct {
	Records []core.InvoiceRecord `json:"records"`
}

// handleDispatch groups the submitted records and sends one reminder per
// aggregate, returning the per-recipient result ledger.
func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	var req dispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, fmt.Errorf("decode dispatch request: %w", err), http.StatusBadRequest)
		return
	}

	summary, err := s.service.Dispatch(r.Context(), req.Records)
	if err != nil {
		status := statusFor(err)
		if err == core.ErrNoRecords {
			status = http.StatusBadRequest
		}
		s.respondError(w, r, err, status)
		return
	}

	logging.FromContext(r.Context()).Info("dispatch request served",
		"batch_id", summary.BatchID,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
	)
	writeJSON(w, http.StatusOK, summary)
}

// handleTestEmail sends a probe message to the configured account so the
// operator can verify SMTP settings before a real run.
func (s *Server) handleTestEmail(w http.ResponseWriter, r *http.Request) {
	msg := s.probe()
	if err := s.sender.Send(r.Context(), msg); err != nil {
		s.respondError(w, r, err, http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"recipient": msg.To,
	})
}
