package content

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("UnitBase", func() {
	var (
		u        *UnitBase
		recorder *signalRecorder
	)

	BeforeEach(func() {
		u = NewUnitBase("intro")
		recorder = &signalRecorder{}
		u.AcceptHook(recorder)
	})

	It("should start in the created state", func() {
		Expect(u.ID()).To(Equal("intro"))
		Expect(u.State()).To(Equal(StateCreated))
		Expect(u.Slot()).To(BeNil())
		Expect(u.ContentObject()).To(BeNil())
	})

	It("should generate an ID if none is given", func() {
		a := NewUnitBase("")
		b := NewUnitBase("")

		Expect(a.ID()).NotTo(BeEmpty())
		Expect(a.ID()).NotTo(Equal(b.ID()))
	})

	It("should walk through the lifecycle", func() {
		Expect(u.BeginLoad()).To(Succeed())
		Expect(u.State()).To(Equal(StateLoading))
		Expect(u.CompleteLoad()).To(Succeed())
		Expect(u.State()).To(Equal(StateLoaded))
		Expect(u.BeginEnter()).To(Succeed())
		Expect(u.State()).To(Equal(StateEntering))
		Expect(u.CompleteEnter()).To(Succeed())
		Expect(u.State()).To(Equal(StateShown))
		Expect(u.BeginExit()).To(Succeed())
		Expect(u.State()).To(Equal(StateExiting))
		Expect(u.CompleteExit()).To(Succeed())
		Expect(u.State()).To(Equal(StateExiting))

		Expect(recorder.signals).To(Equal([]string{
			"UnitLoaded(intro)",
			"UnitEntered(intro)",
			"UnitExited(intro)",
		}))
	})

	It("should reject steps out of order", func() {
		err := u.CompleteLoad()

		var seqErr *InvalidSequenceError
		Expect(errors.As(err, &seqErr)).To(BeTrue())
		Expect(seqErr.Unit).To(Equal("intro"))
		Expect(seqErr.State).To(Equal(StateCreated))
		Expect(u.BeginEnter()).NotTo(Succeed())
		Expect(u.BeginExit()).NotTo(Succeed())
		Expect(recorder.signals).To(BeEmpty())
	})

	It("should complete exiting only once", func() {
		Expect(u.BeginLoad()).To(Succeed())
		Expect(u.CompleteLoad()).To(Succeed())
		Expect(u.BeginEnter()).To(Succeed())
		Expect(u.CompleteEnter()).To(Succeed())
		Expect(u.BeginExit()).To(Succeed())
		Expect(u.CompleteExit()).To(Succeed())

		Expect(u.CompleteExit()).NotTo(Succeed())
		Expect(u.Fail(errors.New("late"))).NotTo(Succeed())
	})

	It("should report failures with the phase", func() {
		cause := errors.New("asset missing")
		Expect(u.BeginLoad()).To(Succeed())

		Expect(u.Fail(cause)).To(Succeed())

		Expect(recorder.signals).To(Equal([]string{"UnitFailed(intro)"}))
		perr := recorder.details[0].(*PhaseError)
		Expect(perr.Phase).To(Equal(PhaseLoad))
		Expect(perr).To(MatchError(cause))
	})

	It("should not fail a unit that is not in a phase", func() {
		Expect(u.Fail(errors.New("x"))).NotTo(Succeed())
		Expect(u.RequestClear()).NotTo(Succeed())
	})

	It("should refuse to be bound to a second slot", func() {
		m := MakeBuilder().Build()
		s1, _ := m.CreateSlot("one", Vec3{}, nil)
		s2, _ := m.CreateSlot("two", Vec3{}, nil)

		u.BindSlot(s1)
		u.BindSlot(s1)

		Expect(func() { u.BindSlot(s2) }).To(Panic())
	})

	It("should refuse a claim while held by another slot", func() {
		m := MakeBuilder().Build()
		s1, _ := m.CreateSlot("one", Vec3{}, nil)
		s2, _ := m.CreateSlot("two", Vec3{}, nil)

		u.Claim(s1)
		u.Claim(s1)
		Expect(u.Owner()).To(BeIdenticalTo(s1))
		Expect(func() { u.Claim(s2) }).To(Panic())

		u.Claim(nil)
		u.Claim(s2)
		Expect(u.Owner()).To(BeIdenticalTo(s2))
	})

	It("should dispose once in reverse order", func() {
		var order []string
		u.OnDispose(func() { order = append(order, "first") })
		u.OnDispose(func() { order = append(order, "second") })
		obj := NewNode("intro")
		u.SetContentObject(obj)

		u.Dispose()
		u.Dispose()

		Expect(order).To(Equal([]string{"second", "first"}))
		Expect(u.State()).To(Equal(StateDisposed))
		Expect(obj.Destroyed()).To(BeTrue())
		Expect(u.BeginLoad()).NotTo(Succeed())
	})
})

var _ = Describe("State", func() {
	It("should have readable names", func() {
		Expect(StateEntering.String()).To(Equal("Entering"))
		Expect(PhasePlayOut.String()).To(Equal("PlayOut"))
	})

	It("should tell which phases are in flight", func() {
		Expect(PhaseIdle.InFlight()).To(BeFalse())
		Expect(PhaseLoad.InFlight()).To(BeTrue())
		Expect(PhasePlayIn.InFlight()).To(BeTrue())
		Expect(PhaseShown.InFlight()).To(BeFalse())
		Expect(PhasePlayOut.InFlight()).To(BeTrue())
	})
})
