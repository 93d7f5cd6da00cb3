package datarecording

import (
	"os"
	"strings"
	"time"
)

// RunInfoEntry is a row of the run info table.
type RunInfoEntry struct {
	Property string
	Value    string
}

// A RunRecorder records how a run was started and when it ended.
type RunRecorder struct {
	recorder  DataRecorder
	tableName string
	entries   []RunInfoEntry
}

// NewRunRecorder creates a RunRecorder that writes into the run_info table.
func NewRunRecorder(recorder DataRecorder) *RunRecorder {
	r := &RunRecorder{
		recorder:  recorder,
		tableName: "run_info",
	}

	recorder.CreateTable(r.tableName, RunInfoEntry{})

	return r
}

// Set adds a property of the run.
func (r *RunRecorder) Set(property, value string) {
	r.entries = append(r.entries, RunInfoEntry{property, value})
}

// Start records the start time, the command, and the working directory.
func (r *RunRecorder) Start() {
	r.Set("Start Time", now())
	r.Set("Command", strings.Join(os.Args, " "))

	if wd, err := os.Getwd(); err == nil {
		r.Set("Working Directory", wd)
	}
}

// End writes all the properties together with the end time.
func (r *RunRecorder) End() {
	r.Set("End Time", now())

	for _, entry := range r.entries {
		r.recorder.InsertData(r.tableName, entry)
	}

	r.entries = nil

	r.recorder.Flush()
}

func now() string {
	return time.Now().Format("2006-01-02 15:04:05.000000000")
}
