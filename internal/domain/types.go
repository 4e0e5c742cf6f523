package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TimestampFormat is the layout of Record.Timestamp (YYYY-MM-DD HH:MM).
// Timestamps are compared as strings, which only works because this layout sorts lexically.
const TimestampFormat = "2006-01-02 15:04"

type PaymentStatus string

const (
	StatusPaid   PaymentStatus = "Paid"
	StatusUnpaid PaymentStatus = "Unpaid"
)

var statusLabels = map[PaymentStatus]string{
	StatusPaid:   "Sudah Bayar",
	StatusUnpaid: "Belum Bayar",
}

// ParsePaymentStatus accepts the English status names case-insensitively as well as their
// Indonesian labels. An empty string is treated as Paid.
//
// Example:
//
//	status, _ := ParsePaymentStatus("belum bayar") // Returns StatusUnpaid
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return StatusPaid, nil
	}

	for status, label := range statusLabels {
		if strings.EqualFold(s, string(status)) || strings.EqualFold(s, label) {
			return status, nil
		}
	}

	return "", fmt.Errorf("unknown payment status: %q", s)
}

// Label returns the localised label printed in exported reports.
func (s PaymentStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}

	return string(s)
}

// Record is a single console rental session.
type Record struct {
	ID            int             `json:"id"`
	Timestamp     string          `json:"timestamp"`
	Billing       string          `json:"billing"`
	DurationHours decimal.Decimal `json:"durationHours"`
	SnackCount    int             `json:"snackCount"`
	Price         int64           `json:"price"`
	SnackCharge   int64           `json:"snackCharge"`
	Status        PaymentStatus   `json:"status"`
}

// Date returns the date portion of the timestamp: everything before the first space.
// A timestamp without a space is returned whole.
func (r Record) Date() string {
	date, _, _ := strings.Cut(r.Timestamp, " ")
	return date
}

// Revenue is the amount the session brought in: rental price plus snacks.
func (r Record) Revenue() int64 {
	return r.Price + r.SnackCharge
}

// RecordInput is the unparsed state of the transaction form. Every field arrives as text and
// is parsed (or defaulted) by the ledger when a record is created or updated.
type RecordInput struct {
	Timestamp     string `json:"timestamp"`
	Billing       string `json:"billing"`
	DurationHours string `json:"durationHours"`
	SnackCount    string `json:"snackCount"`
	Price         string `json:"price"`
	SnackCharge   string `json:"snackCharge"`
	Status        string `json:"status"`
}

// InputFromRecord fills a form from an existing record, as the edit button does.
func InputFromRecord(r Record) RecordInput {
	return RecordInput{
		Timestamp:     r.Timestamp,
		Billing:       r.Billing,
		DurationHours: r.DurationHours.String(),
		SnackCount:    fmt.Sprintf("%d", r.SnackCount),
		Price:         fmt.Sprintf("%d", r.Price),
		SnackCharge:   fmt.Sprintf("%d", r.SnackCharge),
		Status:        string(r.Status),
	}
}

type DailyAggregate struct {
	Date  string `json:"date"`
	Total int64  `json:"total"`
}

type Totals struct {
	Price int64 `json:"priceTotal"`
	Snack int64 `json:"snackTotal"`
	Grand int64 `json:"grandTotal"`
}
