package cache

import (
	"github.com/sarchlab/cachesim/sim/hooking"
)

func (c *Comp) traceAccess(result AccessResult) {
	if c.NumHooks() == 0 {
		return
	}

	ctx := hooking.HookCtx{
		Domain: c,
		Pos:    hooking.HookPosCacheAccess,
		Item:   result,
	}

	c.InvokeHook(ctx)
}
