// Package trace reads memory access traces and replays them against a cache.
//
// A trace has one record per line:
//
//	L 7ff000,4
//
// The first character is the operation, followed by the hexadecimal address
// and the decimal access size.
package trace

import (
	"fmt"
	"strconv"
	"strings"
)

// Op is the operation of a trace record.
type Op byte

// Operations that appear in traces.
const (
	OpInstruction Op = 'I'
	OpLoad        Op = 'L'
	OpStore       Op = 'S'
	OpModify      Op = 'M'
)

// IsKnown returns true for I, L, S and M.
func (o Op) IsKnown() bool {
	switch o {
	case OpInstruction, OpLoad, OpStore, OpModify:
		return true
	default:
		return false
	}
}

// NumAccesses returns how many cache accesses the operation issues.
func (o Op) NumAccesses() int {
	switch o {
	case OpLoad, OpStore:
		return 1
	case OpModify:
		return 2
	default:
		return 0
	}
}

func (o Op) String() string {
	return string(rune(o))
}

// A Record is one parsed trace line. Size is carried along but does not take
// part in the simulation.
type Record struct {
	Op      Op
	Address uint64
	Size    int
}

func (r Record) String() string {
	return fmt.Sprintf("%c %x,%d", r.Op, r.Address, r.Size)
}

// A MalformedRecordError reports a trace line that does not have the three
// fields of a record.
type MalformedRecordError struct {
	Line   int
	Text   string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: malformed record %q: %s",
			e.Line, e.Text, e.Reason)
	}

	return fmt.Sprintf("malformed record %q: %s", e.Text, e.Reason)
}

// An UnrecognizedOperationError reports a well-formed record whose operation
// is not I, L, S or M.
type UnrecognizedOperationError struct {
	Record Record
}

func (e *UnrecognizedOperationError) Error() string {
	return fmt.Sprintf("unrecognized operation %q in record %s",
		e.Record.Op, e.Record)
}

// ParseRecord parses a single trace line. Leading and trailing white space is
// ignored. The operation character is not checked here.
func ParseRecord(line string) (Record, error) {
	text := strings.TrimSpace(line)
	malformed := func(reason string) (Record, error) {
		return Record{}, &MalformedRecordError{Text: text, Reason: reason}
	}

	if text == "" {
		return malformed("empty line")
	}

	op := Op(text[0])
	rest := strings.TrimLeft(text[1:], " \t")

	addrText, sizeText, found := strings.Cut(rest, ",")
	if !found {
		return malformed("missing comma")
	}

	addr, err := parseHex(addrText)
	if err != nil {
		return malformed("bad address: " + err.Error())
	}

	size, err := parseLeadingInt(sizeText)
	if err != nil {
		return malformed("bad size: " + err.Error())
	}

	return Record{Op: op, Address: addr, Size: size}, nil
}

func parseHex(s string) (uint64, error) {
	digits := s
	if len(digits) > 2 && (digits[:2] == "0x" || digits[:2] == "0X") {
		digits = digits[2:]
	}

	if digits == "" {
		return 0, fmt.Errorf("no digits")
	}

	return strconv.ParseUint(digits, 16, 64)
}

// parseLeadingInt reads a decimal integer after optional white space and
// ignores whatever follows it.
func parseLeadingInt(s string) (int, error) {
	s = strings.TrimLeft(s, " \t")

	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}

	digitStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	if end == digitStart {
		return 0, fmt.Errorf("no digits")
	}

	return strconv.Atoi(s[:end])
}
