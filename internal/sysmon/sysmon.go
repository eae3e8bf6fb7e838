// Package sysmon samples host CPU and memory load so verification reports
// can be read against the state of the machine that produced them.
package sysmon

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage. Fields that
// could not be read are zero.
type Stats struct {
	CPUPercent  float64 // 0.0 .. 100.0
	MemPercent  float64 // 0.0 .. 100.0
	MemTotal    uint64  // bytes
	LogicalCPUs int
}

// Sample collects a single system-wide snapshot. CPU uses interval=0, the
// delta since the previous call.
func Sample() Stats {
	var s Stats
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if n, err := cpu.Counts(true); err == nil {
		s.LogicalCPUs = n
	}
	if vmem, err := mem.VirtualMemory(); err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
		s.MemTotal = vmem.Total
	}
	return s
}
