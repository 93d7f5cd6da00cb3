package content

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/stagehand/timing"
)

var _ = Describe("TimedUnit", func() {
	var driver *timing.Driver

	BeforeEach(func() {
		driver = timing.NewDriver()
	})

	It("should require a driver", func() {
		Expect(func() { MakeTimedUnitBuilder().Build("A") }).To(Panic())
	})

	It("should load after the load time", func() {
		u := MakeTimedUnitBuilder().
			WithDriver(driver).
			WithLoadTime(0.5).
			Build("A")

		Expect(u.Load()).To(Succeed())
		Expect(driver.Step(0.25)).To(Succeed())
		Expect(u.State()).To(Equal(StateLoading))
		Expect(u.ContentObject()).To(BeNil())

		Expect(driver.Step(0.25)).To(Succeed())
		Expect(u.State()).To(Equal(StateLoaded))
		Expect(u.ContentObject().Name()).To(Equal("A"))
	})

	It("should only be advanced by its source", func() {
		u := MakeTimedUnitBuilder().
			WithDriver(driver).
			WithSource(timing.SourceFixedUpdate).
			Build("A")
		Expect(u.Load()).To(Succeed())

		Expect(driver.Step(1)).To(Succeed())
		Expect(u.State()).To(Equal(StateLoading))

		Expect(driver.Tick(timing.SourceFixedUpdate, 0.02)).To(Succeed())
		Expect(u.State()).To(Equal(StateLoaded))
	})

	It("should stop its timer when disposed", func() {
		u := MakeTimedUnitBuilder().
			WithDriver(driver).
			WithLoadTime(1).
			Build("A")
		Expect(u.Load()).To(Succeed())
		Expect(driver.NumRegistered(timing.SourceUpdate)).To(Equal(1))

		u.Dispose()

		Expect(driver.NumRegistered(timing.SourceUpdate)).To(Equal(0))
		Expect(driver.Step(2)).To(Succeed())
		Expect(u.State()).To(Equal(StateDisposed))
		Expect(u.ContentObject()).To(BeNil())
	})
})
