package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"slices"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hellora/rentbook/internal/domain"
)

const (
	// BaseFileName is the file name, without extension, reports are saved under by default.
	BaseFileName = "laporan-transaksi"

	DefaultTitle          = "Laporan Transaksi Hellora Game Corner"
	DefaultAcknowledgedBy = "Olifinia Aziza"
	DefaultApprovedBy     = "Raihani Zahra Anindika"
	DefaultSheetName      = "Transaksi"
)

var ErrEmptyView = errors.New("nothing to export")

type (
	Type        string
	Constructor func(opts Options) (Exporter, error)
	Exporter    interface {
		Type() Type
		// Extension returns the file extension of the output, including the leading dot.
		Extension() string
		// Export serialises the view to w. Implementations must not modify the view.
		Export(ctx context.Context, w io.Writer, view []domain.Record) error
	}
)

type Options struct {
	Title          string
	AcknowledgedBy string
	ApprovedBy     string
	SheetName      string
	// DisableCompression leaves PDF content streams readable, which is handy when inspecting output.
	DisableCompression bool
}

func DefaultOptions() Options {
	return Options{
		Title:          DefaultTitle,
		AcknowledgedBy: DefaultAcknowledgedBy,
		ApprovedBy:     DefaultApprovedBy,
		SheetName:      DefaultSheetName,
	}
}

func (o Options) Validate(ctx context.Context) error {
	return validation.ValidateStructWithContext(ctx, &o,
		validation.Field(&o.Title, validation.Required.Error("is required")),
		validation.Field(&o.AcknowledgedBy, validation.Required.Error("is required")),
		validation.Field(&o.ApprovedBy, validation.Required.Error("is required")),
		validation.Field(&o.SheetName, SheetNameRules...),
	)
}

var sheetNamePattern = regexp.MustCompile(`^[^:\\/?*\[\]]*$`)

// SheetNameRules are the constraints xlsx puts on a worksheet name.
var SheetNameRules = []validation.Rule{
	validation.Required.Error("is required"),
	validation.RuneLength(1, 31),
	validation.Match(sheetNamePattern).Error(`must not contain any of : \ / ? * [ ]`),
}

var (
	registry     = make(map[Type]Constructor)
	registryLock = sync.RWMutex{}
)

// Register adds a new exporter constructor to the registry for the given export type.
// It is thread-safe and overwrites any existing constructor for the same Type.
func Register(exportType Type, constructor Constructor) {
	registryLock.Lock()
	defer registryLock.Unlock()

	registry[exportType] = constructor
}

func NewExporter(ctx context.Context, exportType Type, opts Options) (Exporter, error) {
	if err := opts.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	registryLock.RLock()
	defer registryLock.RUnlock()

	constructor, exists := registry[exportType]
	if !exists {
		return nil, fmt.Errorf("unsupported type: %s", exportType)
	}

	exporter, err := constructor(opts)
	if err != nil {
		return nil, fmt.Errorf("constructor: %w", err)
	}

	return exporter, nil
}

// All returns a sorted slice (by name) of all registered export types.
func All() []Type {
	registryLock.RLock()
	defer registryLock.RUnlock()

	exportTypes := make([]Type, 0, len(registry))
	for exportType := range registry {
		exportTypes = append(exportTypes, exportType)
	}

	slices.Sort(exportTypes)

	return exportTypes
}

// DefaultFileName returns the name a report of this exporter is saved under when none is given.
func DefaultFileName(exporter Exporter) string {
	return BaseFileName + exporter.Extension()
}

// ToFile builds the exporter for exportType and writes the view to path.
//
// Example:
//
//	view := query.Filter(store.List(), query.Filters{Date: "2025-09-21"})
//	err := export.ToFile(ctx, export.TypeSpreadsheet, export.DefaultOptions(), "laporan-transaksi.xlsx", view)
func ToFile(ctx context.Context, exportType Type, opts Options, path string, view []domain.Record) error {
	exporter, err := NewExporter(ctx, exportType, opts)
	if err != nil {
		return fmt.Errorf("exporter: %w", err)
	}

	return WriteFile(ctx, path, exporter, view)
}
