package core

import (
	"testing"
	"time"
)

func TestMetricsAverage(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < int(AVG_COUNT); i++ {
		m.Update(0.016)
	}
	if got := m.FrameTime(); got < 15.99 || got > 16.01 {
		t.Errorf("FrameTime() = %v, want 16", got)
	}
}

func TestMetricsRollingWindow(t *testing.T) {
	m := NewMetrics()
	m.Update(0.010)
	if got := m.FrameTime(); got < 9.99 || got > 10.01 {
		t.Errorf("FrameTime() after one frame = %v, want 10", got)
	}
	for i := 0; i < int(AVG_COUNT); i++ {
		m.Update(0.020)
	}
	// the 10ms frame has left the window
	if got := m.FrameTime(); got < 19.99 || got > 20.01 {
		t.Errorf("FrameTime() = %v, want 20", got)
	}
}

func TestMetricsFPS(t *testing.T) {
	m := NewMetrics()
	// 0.01s frames: the second boundary is crossed on the 101st update
	for i := 0; i < 101; i++ {
		m.Update(0.01)
	}
	fps, _ := m.Frame()
	if fps != 100 {
		t.Errorf("FPS = %v, want 100", fps)
	}
	if m.FPS() != fps {
		t.Errorf("FPS() and Frame() disagree")
	}
}

func TestClock(t *testing.T) {
	now := time.Unix(100, 0)
	c := &Clock{now: func() time.Time { return now }}

	c.Update()
	if c.Elapsed() != 0 {
		t.Errorf("unstarted clock elapsed %v", c.Elapsed())
	}

	c.Start()
	now = now.Add(1500 * time.Millisecond)
	c.Update()
	if c.Elapsed() != 1.5 {
		t.Errorf("Elapsed() = %v, want 1.5", c.Elapsed())
	}

	c.Stop()
	now = now.Add(time.Second)
	c.Update()
	if c.Elapsed() != 1.5 {
		t.Errorf("stopped clock moved to %v", c.Elapsed())
	}
}

func TestSetLogLevelFromMetrics(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{level: "debug"},
		{level: "info"},
		{level: "warn"},
		{level: "loud", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if err := SetLogLevel(tt.level); (err != nil) != tt.wantErr {
				t.Errorf("SetLogLevel(%q) error = %v, wantErr %v", tt.level, err, tt.wantErr)
			}
		})
	}
	_ = SetLogLevel("info")
}
