// Package monitoring turns the collector instrumentation into a small web
// server so that a running process can be inspected from outside.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/phuslu/log"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/penumbralab/penumbra/gcscope"
	"github.com/penumbralab/penumbra/tracing"
)

// Monitor serves the live state of registered collector instruments over
// HTTP.
type Monitor struct {
	portNumber    int
	launchBrowser bool

	instrumentsLock sync.Mutex
	instruments     []*gcscope.Instrument
	pauseStats      map[string]*tracing.PauseTimeTracer
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{
		pauseStats: make(map[string]*tracing.PauseTimeTracer),
	}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithBrowserLaunch makes StartServer open the monitor page in the default
// browser.
func (m *Monitor) WithBrowserLaunch() *Monitor {
	m.launchBrowser = true
	return m
}

// RegisterInstrument registers a collector instrument to be monitored. A
// pause-time tracer is attached so that pause statistics can be served.
func (m *Monitor) RegisterInstrument(inst *gcscope.Instrument) {
	m.instrumentsLock.Lock()
	defer m.instrumentsLock.Unlock()

	m.instruments = append(m.instruments, inst)

	stats := tracing.NewPauseTimeTracer()
	tracing.CollectTrace(inst, stats)
	m.pauseStats[inst.Name()] = stats
}

// StartServer starts the monitor as a web server with a custom port if
// wanted.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()

	r.HandleFunc("/api/list_collectors", m.listCollectors)
	r.HandleFunc("/api/phase/{name}", m.reportPhase)
	r.HandleFunc("/api/timings/{name}", m.reportTimings)
	r.HandleFunc("/api/partitions/{name}", m.reportPartitions)
	r.HandleFunc("/api/pauses/{name}", m.reportPauses)
	r.HandleFunc("/api/collector/{name}", m.inspectCollector)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	http.Handle("/", r)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	log.Info().Str("url", url).Msg("monitoring collectors")

	if m.launchBrowser {
		err := browser.OpenURL(url)
		if err != nil {
			log.Warn().Err(err).Msg("cannot open browser")
		}
	}

	go func() {
		err = http.Serve(listener, nil)
		dieOnErr(err)
	}()
}

func (m *Monitor) listCollectors(w http.ResponseWriter, _ *http.Request) {
	m.instrumentsLock.Lock()
	defer m.instrumentsLock.Unlock()

	names := []string{}
	for _, inst := range m.instruments {
		names = append(names, inst.Name())
	}

	bytes, err := json.Marshal(names)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

type phaseRsp struct {
	Phase    string `json:"phase"`
	RootWork bool   `json:"root_work"`
	GCID     uint64 `json:"gc_id"`
	Cause    string `json:"cause"`
}

func (m *Monitor) reportPhase(w http.ResponseWriter, r *http.Request) {
	inst := m.findInstrumentOr404(w, mux.Vars(r)["name"])
	if inst == nil {
		return
	}

	rsp := phaseRsp{
		Phase: "Idle",
		GCID:  inst.GCID(),
		Cause: inst.Cause().String(),
	}

	if inst.PhaseActive() {
		rsp.Phase = inst.CurrentPhase().Name()
		rsp.RootWork = inst.InRootWorkPhase()
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) reportTimings(w http.ResponseWriter, r *http.Request) {
	inst := m.findInstrumentOr404(w, mux.Vars(r)["name"])
	if inst == nil {
		return
	}

	bytes, err := json.Marshal(inst.PhaseTimings().Summary())
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) reportPartitions(w http.ResponseWriter, r *http.Request) {
	inst := m.findInstrumentOr404(w, mux.Vars(r)["name"])
	if inst == nil {
		return
	}

	bytes, err := json.Marshal(inst.Timer().Partitions())
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

type pauseStatsRsp struct {
	Count   uint64  `json:"count"`
	Total   float64 `json:"total"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
}

func (m *Monitor) reportPauses(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	m.instrumentsLock.Lock()
	stats := m.pauseStats[name]
	m.instrumentsLock.Unlock()

	if stats == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Collector not found"))
		dieOnErr(err)

		return
	}

	rsp := pauseStatsRsp{
		Count:   stats.PauseCount(),
		Total:   stats.TotalTime().Seconds(),
		Max:     stats.MaxTime().Seconds(),
		Average: stats.AverageTime().Seconds(),
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) inspectCollector(w http.ResponseWriter, r *http.Request) {
	inst := m.findInstrumentOr404(w, mux.Vars(r)["name"])
	if inst == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(inst)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	bytes, err := json.Marshal(prof)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) findInstrumentOr404(
	w http.ResponseWriter,
	name string,
) *gcscope.Instrument {
	m.instrumentsLock.Lock()
	defer m.instrumentsLock.Unlock()

	var instrument *gcscope.Instrument
	for _, inst := range m.instruments {
		if inst.Name() == name {
			instrument = inst
		}
	}

	if instrument == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Collector not found"))
		dieOnErr(err)
	}

	return instrument
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic().Err(err).Msg("monitor failure")
	}
}
