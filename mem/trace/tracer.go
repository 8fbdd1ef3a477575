package trace

import (
	"log"
	"strconv"
	"strings"

	"github.com/rs/xid"

	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/mem/cache"
	"github.com/sarchlab/cachesim/sim/hooking"
)

// Attach registers hook with every domain.
func Attach(hook hooking.Hook, domains ...hooking.Hookable) {
	for _, d := range domains {
		d.AcceptHook(hook)
	}
}

// A VerboseTracer writes one line per dispatched record, listing the outcome
// of each of its accesses:
//
//	M 20,1 miss evicted hit
//
// It must be attached to both the interpreter and the cache.
type VerboseTracer struct {
	logger *log.Logger
	line   strings.Builder
}

// NewVerboseTracer creates a VerboseTracer that writes into logger.
func NewVerboseTracer(logger *log.Logger) *VerboseTracer {
	return &VerboseTracer{logger: logger}
}

// Func annotates records with their access outcomes.
func (t *VerboseTracer) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case hooking.HookPosRecordStart:
		t.line.Reset()
		t.line.WriteString(ctx.Item.(Record).String())
	case hooking.HookPosCacheAccess:
		t.annotate(ctx.Item.(cache.AccessResult))
	case hooking.HookPosRecordEnd:
		t.logger.Println(t.line.String())
		t.line.Reset()
	}
}

func (t *VerboseTracer) annotate(result cache.AccessResult) {
	if result.IsHit() {
		t.line.WriteString(" hit")
		return
	}

	t.line.WriteString(" miss")

	if result.IsEviction() {
		t.line.WriteString(" evicted")
	}
}

// Addresses and tags are stored as hex text because SQLite integers are
// signed.
func hex(v uint64) string {
	return strconv.FormatUint(v, 16)
}

// accessEntry is a row of the access table.
type accessEntry struct {
	ID         string
	Clock      uint64
	Op         string
	Address    string
	SetID      uint64
	Tag        string
	WayID      int
	Outcome    string
	EvictedTag string
}

// skipEntry is a row of the skipped record table.
type skipEntry struct {
	ID     string
	Reason string
}

// Tables written by the DBTracer.
const (
	AccessTableName = "cache_accesses"
	SkipTableName   = "skipped_records"
)

// A DBTracer records every cache access and every skipped record into a
// DataRecorder. Like the VerboseTracer it must be attached to both the
// interpreter and the cache.
type DBTracer struct {
	recorder  datarecording.DataRecorder
	currentOp Op
}

// NewDBTracer creates a DBTracer and the tables it writes to.
func NewDBTracer(recorder datarecording.DataRecorder) *DBTracer {
	t := &DBTracer{recorder: recorder}

	t.recorder.CreateTable(AccessTableName, accessEntry{})
	t.recorder.CreateTable(SkipTableName, skipEntry{})

	return t
}

// Func records accesses and skips.
func (t *DBTracer) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case hooking.HookPosRecordStart:
		t.currentOp = ctx.Item.(Record).Op
	case hooking.HookPosRecordEnd:
		t.currentOp = 0
	case hooking.HookPosCacheAccess:
		t.recordAccess(ctx.Item.(cache.AccessResult))
	case hooking.HookPosRecordSkip:
		t.recorder.InsertData(SkipTableName, skipEntry{
			ID:     xid.New().String(),
			Reason: ctx.Item.(error).Error(),
		})
	}
}

func (t *DBTracer) recordAccess(result cache.AccessResult) {
	op := ""
	if t.currentOp != 0 {
		op = t.currentOp.String()
	}

	evictedTag := ""
	if result.IsEviction() {
		evictedTag = hex(result.EvictedTag)
	}

	t.recorder.InsertData(AccessTableName, accessEntry{
		ID:         xid.New().String(),
		Clock:      result.Time,
		Op:         op,
		Address:    hex(result.Address),
		SetID:      result.SetID,
		Tag:        hex(result.Tag),
		WayID:      result.WayID,
		Outcome:    result.Outcome.String(),
		EvictedTag: evictedTag,
	})
}
