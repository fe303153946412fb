package types

import (
	"time"

	"github.com/google/uuid"
)

// Diagnostic kinds
const (
	DiagEmptyResult  = "empty_result"
	DiagSkippedFile  = "skipped_file"
	DiagDroppedRows  = "dropped_rows"
	DiagRescaledData = "rescaled"
)

// Diagnostic is a non-fatal condition met while building a report
type Diagnostic struct {
	Kind    string `json:"kind"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Report is the set of tidy tables produced by one reporting invocation
type Report struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	GeneratedAt time.Time    `json:"generated_at"`
	Tables      []*Table     `json:"tables"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// NewReport creates an empty report with a fresh ID
func NewReport(title string) *Report {
	return &Report{
		ID:          uuid.New().String(),
		Title:       title,
		GeneratedAt: time.Now(),
	}
}

// AddTable appends a table to the report
func (r *Report) AddTable(t *Table) {
	r.Tables = append(r.Tables, t)
}

// Warn records a diagnostic
func (r *Report) Warn(kind, subject, message string) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Kind: kind, Subject: subject, Message: message})
}
