package monitoring

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sarchlab/stagehand/content"
	"github.com/sarchlab/stagehand/instrumentation/metrics"
	"github.com/sarchlab/stagehand/timing"
)

var _ = Describe("Monitor", func() {
	var (
		driver  *timing.Driver
		manager *content.Manager
		slot    *content.Slot
		m       *Monitor
		server  *httptest.Server
	)

	get := func(path string) *http.Response {
		rsp, err := http.Get(server.URL + path)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(rsp.Body.Close)

		return rsp
	}

	decode := func(rsp *http.Response, v any) {
		Expect(json.NewDecoder(rsp.Body).Decode(v)).To(Succeed())
	}

	BeforeEach(func() {
		driver = timing.NewDriver()
		manager = content.MakeBuilder().WithDriver(driver).Build()

		var err error
		slot, err = manager.CreateSlot("hud", content.Vec3{}, nil)
		Expect(err).NotTo(HaveOccurred())

		registry := prometheus.NewRegistry()
		manager.AcceptHook(metrics.NewCollector().MustRegister(registry))

		m = NewMonitor()
		m.RegisterDriver(driver)
		m.RegisterManager(manager)
		m.RegisterGatherer(registry)

		server = httptest.NewServer(m.Router())
		DeferCleanup(server.Close)
	})

	It("should report the current time", func() {
		Expect(driver.Step(0.5)).To(Succeed())

		var rsp nowRsp
		decode(get("/api/now"), &rsp)

		Expect(rsp.Now).To(Equal(0.5))
		Expect(rsp.Frame).To(Equal(uint64(1)))
		Expect(rsp.Paused).To(BeFalse())
	})

	It("should pause and continue the driver", func() {
		Expect(get("/api/pause").StatusCode).To(Equal(http.StatusOK))
		Expect(driver.IsPaused()).To(BeTrue())

		var rsp nowRsp
		decode(get("/api/now"), &rsp)
		Expect(rsp.Paused).To(BeTrue())

		Expect(get("/api/continue").StatusCode).To(Equal(http.StatusOK))
		Expect(driver.IsPaused()).To(BeFalse())
	})

	It("should list slots", func() {
		unit := content.MakeTimedUnitBuilder().
			WithDriver(driver).
			WithLoadTime(1).
			Build("toast")
		Expect(slot.Show(unit)).To(Succeed())

		var slots []content.SlotSnapshot
		decode(get("/api/slots"), &slots)

		Expect(slots).To(HaveLen(1))
		Expect(slots[0].ID).To(Equal("hud"))
		Expect(slots[0].Phase).To(Equal("Load"))
		Expect(slots[0].ActiveID).To(Equal("toast"))
		Expect(slots[0].ActiveState).To(Equal("Loading"))
	})

	It("should serialize a slot", func() {
		rsp := get("/api/slot/hud")

		Expect(rsp.StatusCode).To(Equal(http.StatusOK))
		Expect(rsp.Header.Get("Content-Type")).To(Equal("application/json"))
	})

	It("should return 404 for an unknown slot", func() {
		Expect(get("/api/slot/missing").StatusCode).
			To(Equal(http.StatusNotFound))
	})

	It("should list progress bars", func() {
		bar := m.CreateProgressBar("run", 10)
		bar.IncrementFinished(4)
		done := m.CreateProgressBar("done", 1)
		m.CompleteProgressBar(done)

		var bars []ProgressSnapshot
		decode(get("/api/progress"), &bars)

		Expect(bars).To(HaveLen(1))
		Expect(bars[0].Name).To(Equal("run"))
		Expect(bars[0].Finished).To(Equal(uint64(4)))
	})

	It("should report resources", func() {
		var rsp resourceRsp
		decode(get("/api/resource"), &rsp)

		Expect(rsp.MemorySize).To(BeNumerically(">", 0))
	})

	It("should reject invalid profile durations", func() {
		Expect(get("/api/profile?seconds=-1").StatusCode).
			To(Equal(http.StatusBadRequest))
	})

	It("should expose metrics", func() {
		unit := content.MakeTimedUnitBuilder().WithDriver(driver).Build("toast")
		Expect(slot.Show(unit)).To(Succeed())

		body, err := io.ReadAll(get("/metrics").Body)
		Expect(err).NotTo(HaveOccurred())

		Expect(string(body)).To(ContainSubstring(
			`stagehand_signals_total{event="LoadStart",slot="hud"} 1`))
	})

	It("should serve the web page", func() {
		Expect(get("/").StatusCode).To(Equal(http.StatusOK))
	})
})

var _ = Describe("Monitor without a driver", func() {
	It("should refuse to pause", func() {
		server := httptest.NewServer(NewMonitor().Router())
		defer server.Close()

		rsp, err := http.Get(server.URL + "/api/pause")
		Expect(err).NotTo(HaveOccurred())
		defer rsp.Body.Close()

		Expect(rsp.StatusCode).To(Equal(http.StatusServiceUnavailable))
	})
})
