package core

import "sync"

// System internal event codes. Application should use codes beyond 255.
type EventCode uint16

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01

	// Keyboard key pressed. Data: *KeyEvent
	EVENT_CODE_KEY_PRESSED EventCode = 0x02

	// Keyboard key released. Data: *KeyEvent
	EVENT_CODE_KEY_RELEASED EventCode = 0x03

	// Mouse button pressed. Data: *MouseEvent
	EVENT_CODE_BUTTON_PRESSED EventCode = 0x04

	// Mouse button released. Data: *MouseEvent
	EVENT_CODE_BUTTON_RELEASED EventCode = 0x05

	// Mouse wheel scrolled. Data: *MouseEvent
	EVENT_CODE_MOUSE_WHEEL EventCode = 0x07

	// Framebuffer resized. Data: *SystemEvent
	EVENT_CODE_RESIZED EventCode = 0x08

	// A watched asset file was written. Data: *AssetEvent
	EVENT_CODE_ASSET_CHANGED EventCode = 0x09

	MAX_EVENT_CODE EventCode = 0xFF
)

type EventContext struct {
	Type EventCode
	Data interface{}
}

type KeyEvent struct {
	KeyCode KeyCode
}

type MouseEvent struct {
	Button Button
	Scroll float32
}

type SystemEvent struct {
	WindowWidth  uint32
	WindowHeight uint32
}

type AssetEvent struct {
	Path string
}

// Should return true if handled.
type FnOnEvent func(context EventContext) bool

// EventBus dispatches events to registered listeners. Fire runs listeners
// immediately on the calling goroutine. Post queues the event and is safe to
// call from any goroutine; queued events run on the next Dispatch.
type EventBus struct {
	registered map[EventCode][]FnOnEvent

	mutex   sync.Mutex
	pending []EventContext
}

func NewEventBus() *EventBus {
	return &EventBus{
		registered: make(map[EventCode][]FnOnEvent),
	}
}

func (eb *EventBus) Register(code EventCode, onEvent FnOnEvent) {
	eb.registered[code] = append(eb.registered[code], onEvent)
}

// Fire sends the event to listeners of its code in registration order. If a
// listener returns true, the event is considered handled and is not passed on.
func (eb *EventBus) Fire(context EventContext) bool {
	for _, callback := range eb.registered[context.Type] {
		if callback(context) {
			return true
		}
	}
	return false
}

func (eb *EventBus) Post(context EventContext) {
	eb.mutex.Lock()
	eb.pending = append(eb.pending, context)
	eb.mutex.Unlock()
}

// Dispatch fires every queued event and returns how many were processed.
func (eb *EventBus) Dispatch() int {
	eb.mutex.Lock()
	queue := eb.pending
	eb.pending = nil
	eb.mutex.Unlock()

	for _, context := range queue {
		eb.Fire(context)
	}
	return len(queue)
}

func (eb *EventBus) Shutdown() error {
	eb.mutex.Lock()
	eb.pending = nil
	eb.mutex.Unlock()
	eb.registered = make(map[EventCode][]FnOnEvent)
	return nil
}
