package format

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/hellora/rentbook/internal/domain"
)

const FormatTypeJSON FormatType = "json"

func init() {
	register(FormatTypeJSON, func(w io.Writer) Formatter {
		buffered := bufio.NewWriter(w)
		return &JSONLinesFormatter{
			writer:  buffered,
			encoder: json.NewEncoder(buffered),
		}
	})
}

// JSONLinesFormatter writes one JSON object per record and no header.
type JSONLinesFormatter struct {
	writer  *bufio.Writer
	encoder *json.Encoder
}

func (j *JSONLinesFormatter) WriteHeader() error {
	return nil
}

func (j *JSONLinesFormatter) WriteRecord(r domain.Record) error {
	return j.encoder.Encode(r)
}

func (j *JSONLinesFormatter) Flush() error {
	return j.writer.Flush()
}
