package hooking

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type countingHook struct {
	positions []*HookPos
}

func (h *countingHook) Func(ctx HookCtx) {
	h.positions = append(h.positions, ctx.Pos)
}

var _ = Describe("HookableBase", func() {
	var (
		base *HookableBase
	)

	BeforeEach(func() {
		base = &HookableBase{}
	})

	It("should invoke hooks in registration order", func() {
		order := []string{}
		base.AcceptHook(HookFunc(func(ctx HookCtx) {
			order = append(order, "first")
		}))
		base.AcceptHook(HookFunc(func(ctx HookCtx) {
			order = append(order, "second")
		}))

		base.InvokeHook(HookCtx{Pos: HookPosCacheAccess})

		Expect(order).To(Equal([]string{"first", "second"}))
		Expect(base.NumHooks()).To(Equal(2))
	})

	It("should pass the context through", func() {
		hook := &countingHook{}
		base.AcceptHook(hook)

		base.InvokeHook(HookCtx{Pos: HookPosRecordStart})
		base.InvokeHook(HookCtx{Pos: HookPosRecordEnd})

		Expect(hook.positions).To(Equal([]*HookPos{
			HookPosRecordStart, HookPosRecordEnd,
		}))
		Expect(base.Hooks()).To(ConsistOf(hook))
	})

	It("should panic if the same hook is registered twice", func() {
		hook := &countingHook{}
		base.AcceptHook(hook)

		Expect(func() { base.AcceptHook(hook) }).To(Panic())
	})
})
