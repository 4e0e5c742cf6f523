// Package ledger holds the in-memory transaction ledger.
//
// The store is owned by a single caller and is not safe for concurrent use.
package ledger

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hellora/rentbook/internal/domain"
	"github.com/hellora/rentbook/internal/log"
	"github.com/hellora/rentbook/internal/util/sliceutil"
	"github.com/shopspring/decimal"
)

// maxDecimalExponent bounds the exponent of decimal input in either direction.
const maxDecimalExponent = 9

type Store struct {
	records  []domain.Record
	nextID   int
	now      func() time.Time
	location *time.Location
	logger   *slog.Logger
}

type Option func(s *Store)

// WithClock sets the function used to stamp records created without a timestamp.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLocation sets the zone default timestamps are rendered in. Defaults to time.Local.
func WithLocation(location *time.Location) Option {
	return func(s *Store) {
		s.location = location
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		records:  make([]domain.Record, 0),
		nextID:   1,
		now:      time.Now,
		location: time.Local,
		logger:   log.New(),
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		opt(s)
	}

	return s
}

// Create validates the input and appends a new record.
// Ids come from a counter that only moves forward, so an id freed by Delete is never handed out again.
func (s *Store) Create(in domain.RecordInput) (domain.Record, error) {
	record, err := parseInput(in)
	if err != nil {
		return domain.Record{}, err
	}

	if record.Timestamp == "" {
		record.Timestamp = s.now().In(s.location).Format(domain.TimestampFormat)
	}

	record.ID = s.nextID
	s.nextID++
	s.records = append(s.records, record)

	s.logger.Debug("created record",
		slog.Int("record.id", record.ID),
		slog.String("record.billing", record.Billing),
	)

	return record, nil
}

// Update replaces every field of the record with the given id, keeping its position.
// An empty timestamp keeps the stored one.
func (s *Store) Update(id int, in domain.RecordInput) (domain.Record, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Record{}, &domain.NotFoundError{ID: id}
	}

	record, err := parseInput(in)
	if err != nil {
		return domain.Record{}, err
	}

	if record.Timestamp == "" {
		record.Timestamp = s.records[idx].Timestamp
	}

	record.ID = id
	s.records[idx] = record

	s.logger.Debug("updated record", slog.Int("record.id", id))

	return record, nil
}

// Delete removes the record with the given id. Deleting an unknown id is a no-op.
func (s *Store) Delete(id int) {
	before := len(s.records)
	s.records = sliceutil.Filter(s.records, func(r domain.Record) bool {
		return r.ID != id
	})

	if len(s.records) != before {
		s.logger.Debug("deleted record", slog.Int("record.id", id))
	}
}

// List returns a copy of all records in insertion order.
func (s *Store) List() []domain.Record {
	return slices.Clone(s.records)
}

func (s *Store) Get(id int) (domain.Record, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Record{}, false
	}

	return s.records[idx], true
}

func (s *Store) Len() int {
	return len(s.records)
}

func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.records, func(r domain.Record) bool {
		return r.ID == id
	})
}

func parseInput(in domain.RecordInput) (domain.Record, error) {
	in = trimInput(in)

	err := validation.ValidateStruct(&in,
		validation.Field(&in.Billing, validation.Required.Error("is required")),
		validation.Field(&in.Price, validation.Required.Error("is required"), validation.By(wholeNumber(true))),
		validation.Field(&in.DurationHours, validation.By(nonNegativeDecimal)),
		validation.Field(&in.SnackCount, validation.By(wholeNumber(false))),
		validation.Field(&in.SnackCharge, validation.By(wholeNumber(false))),
		validation.Field(&in.Status, validation.By(knownStatus)),
	)
	if err != nil {
		return domain.Record{}, &domain.ValidationError{Err: err}
	}

	status, _ := domain.ParsePaymentStatus(in.Status)

	return domain.Record{
		Timestamp:     in.Timestamp,
		Billing:       in.Billing,
		DurationHours: decimalOrZero(in.DurationHours),
		SnackCount:    int(intOrZero(in.SnackCount)),
		Price:         intOrZero(in.Price),
		SnackCharge:   intOrZero(in.SnackCharge),
		Status:        status,
	}, nil
}

func trimInput(in domain.RecordInput) domain.RecordInput {
	return domain.RecordInput{
		Timestamp:     strings.TrimSpace(in.Timestamp),
		Billing:       strings.TrimSpace(in.Billing),
		DurationHours: strings.TrimSpace(in.DurationHours),
		SnackCount:    strings.TrimSpace(in.SnackCount),
		Price:         strings.TrimSpace(in.Price),
		SnackCharge:   strings.TrimSpace(in.SnackCharge),
		Status:        strings.TrimSpace(in.Status),
	}
}

// wholeNumber rejects negative integers and integers that overflow int64. Text that is not an integer at all is rejected only
// when strict is set; otherwise it falls back to zero when the record is built.
func wholeNumber(strict bool) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}

		n, err := strconv.ParseInt(s, 10, 64)
		if errors.Is(err, strconv.ErrRange) {
			return errors.New("is too large")
		}

		if err != nil {
			if strict {
				return errors.New("must be a whole number")
			}

			return nil
		}

		if n < 0 {
			return errors.New("must be no less than 0")
		}

		return nil
	}
}

func nonNegativeDecimal(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}

	// Bound the exponent before comparing; rescaling an extreme one allocates without limit.
	switch {
	case d.Exponent() > maxDecimalExponent:
		return errors.New("is too large")
	case d.Exponent() < -maxDecimalExponent:
		return fmt.Errorf("must have at most %d decimal places", maxDecimalExponent)
	}

	if d.IsNegative() {
		return errors.New("must be no less than 0")
	}

	return nil
}

func knownStatus(value any) error {
	s, _ := value.(string)
	if _, err := domain.ParsePaymentStatus(s); err != nil {
		return errors.New("must be Paid or Unpaid")
	}

	return nil
}

func intOrZero(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}

	return n
}

func decimalOrZero(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}

	return d
}
