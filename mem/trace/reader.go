package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// A RecordSource provides trace records one by one. Next returns io.EOF
// after the last record. A *MalformedRecordError means the current line was
// unusable and the source can continue; any other error is fatal.
type RecordSource interface {
	Next() (Record, error)
}

// MaxLineLength is the longest trace line a Reader parses. Longer lines are
// reported as malformed and skipped.
const MaxLineLength = 4096

// Reader parses records from a line-oriented text stream.
type Reader struct {
	reader *bufio.Reader
	line   int
}

// NewReader creates a Reader that reads from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{reader: bufio.NewReaderSize(r, MaxLineLength+1)}
}

// Line returns the number of the line that was read last.
func (r *Reader) Line() int {
	return r.line
}

// Next returns the next record.
func (r *Reader) Next() (Record, error) {
	text, isPrefix, err := r.reader.ReadLine()
	if errors.Is(err, io.EOF) {
		return Record{}, io.EOF
	}

	if err != nil {
		return Record{}, r.readError(err)
	}

	r.line++

	if isPrefix {
		head := string(text[:32])

		if err := r.skipRestOfLine(); err != nil {
			return Record{}, fmt.Errorf("reading trace line %d: %w",
				r.line, err)
		}

		return Record{}, &MalformedRecordError{
			Line:   r.line,
			Text:   head + "...",
			Reason: fmt.Sprintf("line longer than %d bytes", MaxLineLength),
		}
	}

	record, err := ParseRecord(string(text))

	var malformed *MalformedRecordError
	if errors.As(err, &malformed) {
		malformed.Line = r.line
	}

	return record, err
}

func (r *Reader) skipRestOfLine() error {
	for {
		_, isPrefix, err := r.reader.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}

		if !isPrefix {
			return nil
		}
	}
}

func (r *Reader) readError(err error) error {
	return fmt.Errorf("reading trace line %d: %w", r.line+1, err)
}
