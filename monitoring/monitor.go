// Package monitoring turns a running stage into a web server that can pause
// the driver and show the state of the slots.
package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/stagehand/content"
	"github.com/sarchlab/stagehand/monitoring/web"
	"github.com/sarchlab/stagehand/timing"
)

// Monitor serves the state of a driver and the slots of a manager over HTTP.
type Monitor struct {
	driver     *timing.Driver
	manager    *content.Manager
	gatherer   prometheus.Gatherer
	portNumber int

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
	numBarsCreated   int

	server *http.Server
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor. Zero picks a random
// port.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterDriver registers the driver that advances the stage.
func (m *Monitor) RegisterDriver(d *timing.Driver) {
	m.driver = d
}

// RegisterManager registers the manager whose slots are shown.
func (m *Monitor) RegisterManager(manager *content.Manager) {
	m.manager = manager
}

// RegisterGatherer sets where the /metrics endpoint gathers metrics from.
func (m *Monitor) RegisterGatherer(g prometheus.Gatherer) {
	m.gatherer = g
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.numBarsCreated++
	bar := &ProgressBar{
		ID:        strconv.Itoa(m.numBarsCreated),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	bars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			bars = append(bars, b)
		}
	}

	m.progressBars = bars
}

// Router returns the handler of all the endpoints.
func (m *Monitor) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/pause", m.pauseDriver)
	r.HandleFunc("/api/continue", m.continueDriver)
	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/slots", m.listSlots)
	r.HandleFunc("/api/slot/{id}", m.slotDetails)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)

	gatherer := m.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// StartServer starts serving in the background and returns the URL of the
// monitor.
func (m *Monitor) StartServer() (string, error) {
	listener, err := net.Listen("tcp", ":"+strconv.Itoa(m.portNumber))
	if err != nil {
		return "", fmt.Errorf("start monitor: %w", err)
	}

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring stage with %s\n", url)

	m.server = &http.Server{
		Handler:           m.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		err := m.server.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "Monitor stopped: %v\n", err)
		}
	}()

	return url, nil
}

// Shutdown stops the server.
func (m *Monitor) Shutdown(ctx context.Context) error {
	if m.server == nil {
		return nil
	}

	return m.server.Shutdown(ctx)
}

func (m *Monitor) requireDriver(w http.ResponseWriter) bool {
	if m.driver == nil {
		http.Error(w, "no driver registered", http.StatusServiceUnavailable)
		return false
	}

	return true
}

func (m *Monitor) pauseDriver(w http.ResponseWriter, _ *http.Request) {
	if !m.requireDriver(w) {
		return
	}

	m.driver.Pause()
	w.WriteHeader(http.StatusOK)
}

func (m *Monitor) continueDriver(w http.ResponseWriter, _ *http.Request) {
	if !m.requireDriver(w) {
		return
	}

	m.driver.Continue()
	w.WriteHeader(http.StatusOK)
}

type nowRsp struct {
	Now    float64 `json:"now"`
	Frame  uint64  `json:"frame"`
	Paused bool    `json:"paused"`
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	if !m.requireDriver(w) {
		return
	}

	writeJSON(w, nowRsp{
		Now:    float64(m.driver.CurrentTime()),
		Frame:  m.driver.Frame(),
		Paused: m.driver.IsPaused(),
	})
}

func (m *Monitor) inspect(fn func()) {
	if m.driver == nil {
		fn()
		return
	}

	m.driver.Inspect(fn)
}

func (m *Monitor) listSlots(w http.ResponseWriter, _ *http.Request) {
	snapshots := []content.SlotSnapshot{}

	if m.manager != nil {
		m.inspect(func() {
			for _, s := range m.manager.Slots() {
				snapshots = append(snapshots, s.Snapshot())
			}
		})
	}

	writeJSON(w, snapshots)
}

func (m *Monitor) slotDetails(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if m.manager == nil {
		http.Error(w, "Slot not found", http.StatusNotFound)
		return
	}

	var (
		found bool
		buf   bytes.Buffer
		err   error
	)

	m.inspect(func() {
		var slot *content.Slot

		slot, found = m.manager.Slot(id)
		if !found {
			return
		}

		serializer := goseth.NewSerializer()
		serializer.SetRoot(slot)
		serializer.SetMaxDepth(1)
		err = serializer.Serialize(&buf)
	})

	if !found {
		http.Error(w, "Slot not found", http.StatusNotFound)
		return
	}

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(buf.Bytes())
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	bars := make([]ProgressSnapshot, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		bars = append(bars, b.Snapshot())
	}
	m.progressBarsLock.Unlock()

	writeJSON(w, bars)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cpuPercent, err := proc.CPUPercent()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	memory, err := proc.MemoryInfo()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memory.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, r *http.Request) {
	duration := time.Second

	if s := r.URL.Query().Get("seconds"); s != "" {
		seconds, err := strconv.ParseFloat(s, 64)
		if err != nil || seconds <= 0 || seconds > 30 {
			http.Error(w, "invalid seconds "+s, http.StatusBadRequest)
			return
		}

		duration = time.Duration(seconds * float64(time.Second))
	}

	buf := bytes.NewBuffer(nil)

	if err := pprof.StartCPUProfile(buf); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	time.Sleep(duration)
	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}
