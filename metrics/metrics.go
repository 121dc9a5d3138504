// Copyright (c) 2017-2019 The Qitmeer developers
//
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package metrics wires go-metrics meters for the store and the verifiers.
// Every constructor returns a NOP stub unless collection was enabled before
// the meter was created.
package metrics

import (
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/Qitmeer/cellverify/log"
	"github.com/rcrowley/go-metrics"
	"github.com/rcrowley/go-metrics/exp"
)

// MetricsEnabledFlag is the CLI flag name to use to enable metrics collections.
const MetricsEnabledFlag = "metrics"

// Enabled is the flag specifying if metrics are enable or not.
var Enabled = false

// Package level meters are created while packages initialize, before any
// flag parsing, so the flag is peeked from the raw arguments.
func init() {
	for _, arg := range os.Args {
		if strings.TrimLeft(arg, "-") == MetricsEnabledFlag {
			Enable()
		}
	}
	exp.Exp(metrics.DefaultRegistry)
}

// Enable turns collection on. Meters created before the call stay NOP
// stubs.
func Enable() {
	if !Enabled {
		log.Info("Enabling metrics collection")
	}
	Enabled = true
}

func NewCounter(name string) metrics.Counter {
	if !Enabled {
		return new(metrics.NilCounter)
	}
	return metrics.GetOrRegisterCounter(name, metrics.DefaultRegistry)
}

func NewMeter(name string) metrics.Meter {
	if !Enabled {
		return new(metrics.NilMeter)
	}
	return metrics.GetOrRegisterMeter(name, metrics.DefaultRegistry)
}

func NewTimer(name string) metrics.Timer {
	if !Enabled {
		return new(metrics.NilTimer)
	}
	return metrics.GetOrRegisterTimer(name, metrics.DefaultRegistry)
}

// WriteOnce dumps every registered metric to w, sorted by name.
func WriteOnce(w io.Writer) {
	metrics.WriteOnce(metrics.DefaultRegistry, w)
}

// Each calls fn for every registered metric.
func Each(fn func(name string, m interface{})) {
	metrics.DefaultRegistry.Each(fn)
}

// processSample is one reading of the process counters.
type processSample struct {
	mem    runtime.MemStats
	disk   DiskStats
	diskOK bool
}

func (s *processSample) read() {
	runtime.ReadMemStats(&s.mem)
	s.diskOK = ReadDiskStats(&s.disk) == nil
}

// processMeters mark the growth of the process counters between samples.
type processMeters struct {
	allocs, frees, inuse, pauses metrics.Meter

	diskReads, diskReadBytes, diskWrites, diskWriteBytes metrics.Meter
}

func newProcessMeters() *processMeters {
	return &processMeters{
		allocs:         NewMeter("process/memory/allocs"),
		frees:          NewMeter("process/memory/frees"),
		inuse:          NewMeter("process/memory/inuse"),
		pauses:         NewMeter("process/memory/pauses"),
		diskReads:      NewMeter("process/disk/readcount"),
		diskReadBytes:  NewMeter("process/disk/readdata"),
		diskWrites:     NewMeter("process/disk/writecount"),
		diskWriteBytes: NewMeter("process/disk/writedata"),
	}
}

func (m *processMeters) mark(prev, cur *processSample) {
	m.allocs.Mark(int64(cur.mem.Mallocs - prev.mem.Mallocs))
	m.frees.Mark(int64(cur.mem.Frees - prev.mem.Frees))
	m.inuse.Mark(int64(cur.mem.Alloc) - int64(prev.mem.Alloc))
	m.pauses.Mark(int64(cur.mem.PauseTotalNs - prev.mem.PauseTotalNs))

	if prev.diskOK && cur.diskOK {
		m.diskReads.Mark(cur.disk.ReadCount - prev.disk.ReadCount)
		m.diskReadBytes.Mark(cur.disk.ReadBytes - prev.disk.ReadBytes)
		m.diskWrites.Mark(cur.disk.WriteCount - prev.disk.WriteCount)
		m.diskWriteBytes.Mark(cur.disk.WriteBytes - prev.disk.WriteBytes)
	}
}

// CollectProcessMetrics samples memory and disk usage of the process every
// refresh until quit is closed.
func CollectProcessMetrics(refresh time.Duration, quit <-chan struct{}) {
	// Short circuit if the metrics system is disabled
	if !Enabled {
		return
	}
	meters := newProcessMeters()
	samples := [2]processSample{}
	samples[0].read()
	if !samples[0].diskOK {
		log.Debug("Disk metrics are not available on this platform")
	}

	ticker := time.NewTicker(refresh)
	defer ticker.Stop()
	for i := 1; ; i++ {
		select {
		case <-ticker.C:
		case <-quit:
			return
		}
		cur, prev := &samples[i%2], &samples[(i-1)%2]
		cur.read()
		meters.mark(prev, cur)
	}
}
