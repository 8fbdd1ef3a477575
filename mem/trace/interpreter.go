package trace

import (
	"errors"
	"io"

	"github.com/sarchlab/cachesim/mem/cache"
	"github.com/sarchlab/cachesim/sim/hooking"
)

// An Accessor resolves single memory accesses. *cache.Comp is an Accessor.
type Accessor interface {
	Touch(addr uint64) cache.AccessResult
}

// Summary counts what the interpreter saw.
type Summary struct {
	Records      uint64
	Instructions uint64
	Malformed    uint64
	Unrecognized uint64
	Accesses     uint64
}

// Skipped returns the number of records that were dropped.
func (s Summary) Skipped() uint64 {
	return s.Malformed + s.Unrecognized
}

// Interpreter turns trace records into cache accesses. Loads and stores
// access the cache once, modifies twice and instruction fetches never.
type Interpreter struct {
	hooking.HookableBase

	cache   Accessor
	summary Summary
}

// NewInterpreter creates an interpreter that drives c.
func NewInterpreter(c Accessor) *Interpreter {
	return &Interpreter{cache: c}
}

// Summary returns the counts collected so far.
func (i *Interpreter) Summary() Summary {
	return i.summary
}

// Run replays every record of src. Malformed records and unrecognized
// operations are skipped. Run stops at the end of the trace or at the first
// error that is not about a single record.
func (i *Interpreter) Run(src RecordSource) error {
	for {
		record, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		var malformed *MalformedRecordError
		if errors.As(err, &malformed) {
			i.summary.Records++
			i.summary.Malformed++
			i.traceSkip(malformed)

			continue
		}

		if err != nil {
			return err
		}

		i.summary.Records++

		err = i.Execute(record)

		var unrecognized *UnrecognizedOperationError
		if errors.As(err, &unrecognized) {
			i.summary.Unrecognized++
			i.traceSkip(unrecognized)
		}
	}
}

// Execute dispatches one record. It returns an *UnrecognizedOperationError
// and leaves the cache untouched if the operation is unknown.
func (i *Interpreter) Execute(record Record) error {
	switch record.Op {
	case OpInstruction:
		i.summary.Instructions++
		return nil
	case OpLoad, OpStore, OpModify:
	default:
		return &UnrecognizedOperationError{Record: record}
	}

	i.traceRecord(hooking.HookPosRecordStart, record)

	for n := 0; n < record.Op.NumAccesses(); n++ {
		i.cache.Touch(record.Address)
		i.summary.Accesses++
	}

	i.traceRecord(hooking.HookPosRecordEnd, record)

	return nil
}

func (i *Interpreter) traceRecord(pos *hooking.HookPos, record Record) {
	if i.NumHooks() == 0 {
		return
	}

	i.InvokeHook(hooking.HookCtx{Domain: i, Pos: pos, Item: record})
}

func (i *Interpreter) traceSkip(reason error) {
	if i.NumHooks() == 0 {
		return
	}

	i.InvokeHook(hooking.HookCtx{
		Domain: i,
		Pos:    hooking.HookPosRecordSkip,
		Item:   reason,
	})
}
