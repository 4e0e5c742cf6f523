package format

import (
	"fmt"
	"io"
	"slices"

	"github.com/hellora/rentbook/internal/domain"
)

type FormatType string

type Formatter interface {
	WriteHeader() error
	WriteRecord(r domain.Record) error
	Flush() error
}

type constructor func(io.Writer) Formatter

var registry = make(map[FormatType]constructor)

func register(format FormatType, constructor constructor) {
	registry[format] = constructor
}

func NewFormatter(format FormatType, w io.Writer) (Formatter, error) {
	constructor, exists := registry[format]
	if !exists {
		return nil, fmt.Errorf("unsupported format type: %s", format)
	}

	return constructor(w), nil
}

func All() []FormatType {
	formats := make([]FormatType, 0, len(registry))
	for format := range registry {
		formats = append(formats, format)
	}

	slices.Sort(formats)

	return formats
}

// WriteCollection writes the header, every record and then flushes the formatter.
func WriteCollection(formatter Formatter, records []domain.Record) error {
	if err := formatter.WriteHeader(); err != nil {
		return fmt.Errorf("header: %w", err)
	}

	for _, record := range records {
		if err := formatter.WriteRecord(record); err != nil {
			return fmt.Errorf("record %d: %w", record.ID, err)
		}
	}

	if err := formatter.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}

	return nil
}
