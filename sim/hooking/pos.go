package hooking

// Positions triggered by the cache and the trace interpreter.
var (
	// HookPosCacheAccess fires after every access the cache resolves. The
	// item is the access result.
	HookPosCacheAccess = &HookPos{Name: "CacheAccess"}

	// HookPosRecordStart fires before a trace record is dispatched.
	HookPosRecordStart = &HookPos{Name: "RecordStart"}

	// HookPosRecordEnd fires after all accesses of a record are done.
	HookPosRecordEnd = &HookPos{Name: "RecordEnd"}

	// HookPosRecordSkip fires when a record is dropped without touching the
	// cache. The item is the error that explains why.
	HookPosRecordSkip = &HookPos{Name: "RecordSkip"}
)
