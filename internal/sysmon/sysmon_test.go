package sysmon

import "testing"

func TestSample_ReturnsValidRanges(t *testing.T) {
	s := Sample()
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent out of range: %f", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent out of range: %f", s.MemPercent)
	}
}

func TestSample_HostInfo(t *testing.T) {
	s := Sample()
	if s.MemTotal == 0 {
		t.Error("expected non-zero MemTotal on a running system")
	}
	if s.LogicalCPUs < 1 {
		t.Errorf("LogicalCPUs = %d, want >= 1", s.LogicalCPUs)
	}
}
