package hooking

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var hookPosTest = &HookPos{Name: "Test"}

var _ = Describe("HookableBase", func() {
	var (
		mockCtrl *gomock.Controller
		domain   *HookableBase
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		domain = NewHookableBase()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should invoke hooks in insertion order", func() {
		hook1 := NewMockHook(mockCtrl)
		hook2 := NewMockHook(mockCtrl)
		ctx := HookCtx{Domain: domain, Pos: hookPosTest, Item: 1}

		call1 := hook1.EXPECT().Func(ctx)
		hook2.EXPECT().Func(ctx).After(call1)

		domain.AcceptHook(hook1)
		domain.AcceptHook(hook2)
		domain.InvokeHook(ctx)

		Expect(domain.NumHooks()).To(Equal(2))
		Expect(domain.Hooks()).To(Equal([]Hook{hook1, hook2}))
	})

	It("should panic if the same hook is accepted twice", func() {
		hook := NewMockHook(mockCtrl)
		domain.AcceptHook(hook)

		Expect(func() { domain.AcceptHook(hook) }).To(Panic())
	})

	It("should allow a hook to be accepted again after unsubscribing", func() {
		hook := NewMockHook(mockCtrl)
		sub := domain.AcceptHook(hook)
		sub.Unsubscribe()

		Expect(func() { domain.AcceptHook(hook) }).NotTo(Panic())
		Expect(domain.NumHooks()).To(Equal(1))
	})

	It("should stop invoking a hook after unsubscribing", func() {
		hook := NewMockHook(mockCtrl)
		sub := domain.AcceptHook(hook)

		sub.Unsubscribe()
		sub.Unsubscribe()
		domain.InvokeHook(HookCtx{Pos: hookPosTest})

		Expect(sub.Active()).To(BeFalse())
		Expect(domain.NumHooks()).To(Equal(0))
	})

	It("should remove a hook by identity", func() {
		hook := NewMockHook(mockCtrl)
		sub := domain.AcceptHook(hook)

		domain.RemoveHook(hook)

		Expect(sub.Active()).To(BeFalse())
		Expect(domain.Hooks()).To(BeEmpty())
	})

	It("should skip hooks unsubscribed by an earlier hook in the same dispatch", func() {
		var later Subscription
		calls := []string{}

		domain.AcceptHook(HookFunc(func(HookCtx) {
			calls = append(calls, "first")
			later.Unsubscribe()
		}))
		later = domain.AcceptHook(HookFunc(func(HookCtx) {
			calls = append(calls, "second")
		}))

		domain.InvokeHook(HookCtx{Pos: hookPosTest})

		Expect(calls).To(Equal([]string{"first"}))
		Expect(domain.NumHooks()).To(Equal(1))
	})

	It("should let a hook unsubscribe itself during dispatch", func() {
		var self Subscription
		calls := 0

		self = domain.AcceptHook(HookFunc(func(HookCtx) {
			calls++
			self.Unsubscribe()
		}))

		domain.InvokeHook(HookCtx{Pos: hookPosTest})
		domain.InvokeHook(HookCtx{Pos: hookPosTest})

		Expect(calls).To(Equal(1))
	})

	It("should defer hooks accepted during dispatch to the next dispatch", func() {
		calls := []string{}
		added := false

		domain.AcceptHook(HookFunc(func(HookCtx) {
			calls = append(calls, "outer")
			if !added {
				added = true
				domain.AcceptHook(HookFunc(func(HookCtx) {
					calls = append(calls, "inner")
				}))
			}
		}))

		domain.InvokeHook(HookCtx{Pos: hookPosTest})
		Expect(calls).To(Equal([]string{"outer"}))

		domain.InvokeHook(HookCtx{Pos: hookPosTest})
		Expect(calls).To(Equal([]string{"outer", "outer", "inner"}))
	})

	It("should support nested dispatch", func() {
		depth := 0
		calls := 0

		domain.AcceptHook(HookFunc(func(ctx HookCtx) {
			calls++
			if depth == 0 {
				depth++
				domain.InvokeHook(ctx)
			}
		}))

		domain.InvokeHook(HookCtx{Pos: hookPosTest})

		Expect(calls).To(Equal(2))
	})
})
