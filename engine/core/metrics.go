package core

import "github.com/spaghettifunk/glkit/engine/containers"

// AVG_COUNT is the number of frames in the rolling frame time average.
const AVG_COUNT uint8 = 30

// Metrics keeps a rolling frame time average and a once-per-second FPS count.
type Metrics struct {
	frameTimes         *containers.RingQueue[float64]
	frameTimeSum       float64
	msAvg              float64
	frames             int32
	accumulatedFrameMS float64
	fps                float64
}

func NewMetrics() *Metrics {
	return &Metrics{
		frameTimes: containers.NewRingQueue[float64](int(AVG_COUNT)),
	}
}

func (m *Metrics) Update(frameElapsedTime float64) {
	frameMS := frameElapsedTime * 1000.0
	if m.frameTimes.IsFull() {
		oldest, _ := m.frameTimes.Dequeue()
		m.frameTimeSum -= oldest
	}
	_ = m.frameTimes.Enqueue(frameMS)
	m.frameTimeSum += frameMS
	m.msAvg = m.frameTimeSum / float64(m.frameTimes.Len())

	// Calculate frames per second.
	m.accumulatedFrameMS += frameMS
	if m.accumulatedFrameMS > 1000 {
		m.fps = float64(m.frames)
		m.accumulatedFrameMS -= 1000
		m.frames = 0
	}

	m.frames++
}

func (m *Metrics) FPS() float64 {
	return m.fps
}

// FrameTime is the average frame time in milliseconds over the last
// AVG_COUNT frames.
func (m *Metrics) FrameTime() float64 {
	return m.msAvg
}

func (m *Metrics) Frame() (float64, float64) {
	return m.fps, m.msAvg
}
