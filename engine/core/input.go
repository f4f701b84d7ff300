package core

type Button uint16

const (
	BUTTON_LEFT Button = iota
	BUTTON_RIGHT
	BUTTON_MIDDLE
	BUTTON_MAX_BUTTONS
)

// Key code definitions
type KeyCode uint16

const (
	KEY_BACKSPACE KeyCode = 0x08
	KEY_TAB       KeyCode = 0x09
	KEY_ENTER     KeyCode = 0x0D
	KEY_ESCAPE    KeyCode = 0x1B
	KEY_SPACE     KeyCode = 0x20
	KEY_PRIOR     KeyCode = 0x21
	KEY_NEXT      KeyCode = 0x22
	KEY_END       KeyCode = 0x23
	KEY_HOME      KeyCode = 0x24
	KEY_LEFT      KeyCode = 0x25
	KEY_UP        KeyCode = 0x26
	KEY_RIGHT     KeyCode = 0x27
	KEY_DOWN      KeyCode = 0x28
	KEY_INSERT    KeyCode = 0x2D
	KEY_DELETE    KeyCode = 0x2E
	KEY_0         KeyCode = 0x30
	KEY_1         KeyCode = 0x31
	KEY_2         KeyCode = 0x32
	KEY_3         KeyCode = 0x33
	KEY_4         KeyCode = 0x34
	KEY_5         KeyCode = 0x35
	KEY_6         KeyCode = 0x36
	KEY_7         KeyCode = 0x37
	KEY_8         KeyCode = 0x38
	KEY_9         KeyCode = 0x39
	KEY_A         KeyCode = 0x41
	KEY_B         KeyCode = 0x42
	KEY_C         KeyCode = 0x43
	KEY_D         KeyCode = 0x44
	KEY_E         KeyCode = 0x45
	KEY_F         KeyCode = 0x46
	KEY_G         KeyCode = 0x47
	KEY_H         KeyCode = 0x48
	KEY_I         KeyCode = 0x49
	KEY_J         KeyCode = 0x4A
	KEY_K         KeyCode = 0x4B
	KEY_L         KeyCode = 0x4C
	KEY_M         KeyCode = 0x4D
	KEY_N         KeyCode = 0x4E
	KEY_O         KeyCode = 0x4F
	KEY_P         KeyCode = 0x50
	KEY_Q         KeyCode = 0x51
	KEY_R         KeyCode = 0x52
	KEY_S         KeyCode = 0x53
	KEY_T         KeyCode = 0x54
	KEY_U         KeyCode = 0x55
	KEY_V         KeyCode = 0x56
	KEY_W         KeyCode = 0x57
	KEY_X         KeyCode = 0x58
	KEY_Y         KeyCode = 0x59
	KEY_Z         KeyCode = 0x5A
	KEY_LWIN      KeyCode = 0x5B
	KEY_RWIN      KeyCode = 0x5C
	KEY_F1        KeyCode = 0x70
	KEY_F2        KeyCode = 0x71
	KEY_F3        KeyCode = 0x72
	KEY_F4        KeyCode = 0x73
	KEY_F5        KeyCode = 0x74
	KEY_F6        KeyCode = 0x75
	KEY_F7        KeyCode = 0x76
	KEY_F8        KeyCode = 0x77
	KEY_F9        KeyCode = 0x78
	KEY_F10       KeyCode = 0x79
	KEY_F11       KeyCode = 0x7A
	KEY_F12       KeyCode = 0x7B
	KEY_LSHIFT    KeyCode = 0xA0
	KEY_RSHIFT    KeyCode = 0xA1
	KEY_LCONTROL  KeyCode = 0xA2
	KEY_RCONTROL  KeyCode = 0xA3
	KEY_LMENU     KeyCode = 0xA4
	KEY_RMENU     KeyCode = 0xA5

	KEYS_MAX_KEYS KeyCode = 0xFF
)

type keyboardState struct {
	Keys [KEYS_MAX_KEYS + 1]bool
}

type mouseState struct {
	X       float64
	Y       float64
	Buttons [BUTTON_MAX_BUTTONS]bool
}

// Input tracks the keyboard and mouse state for the current and previous
// frame. The platform layer feeds it from window callbacks and the engine
// rolls it over once per frame with Update.
type Input struct {
	events *EventBus

	keyboardCurrent  keyboardState
	keyboardPrevious keyboardState
	mouseCurrent     mouseState
	mousePrevious    mouseState

	// accumulated during the current frame, cleared on Update
	scrollX float32
	scrollY float32
	chars   []rune
}

// NewInput creates the input state. events may be nil, in which case no
// key/button/wheel events are fired.
func NewInput(events *EventBus) *Input {
	return &Input{events: events}
}

// Update copies the current state to the previous one and resets the
// per-frame accumulators. Call it last in the frame.
func (in *Input) Update() {
	in.keyboardPrevious = in.keyboardCurrent
	in.mousePrevious = in.mouseCurrent
	in.scrollX = 0
	in.scrollY = 0
	in.chars = in.chars[:0]
}

// keyboard input
func (in *Input) IsKeyDown(key KeyCode) bool {
	return key <= KEYS_MAX_KEYS && in.keyboardCurrent.Keys[key]
}

func (in *Input) IsKeyUp(key KeyCode) bool {
	return !in.IsKeyDown(key)
}

func (in *Input) WasKeyDown(key KeyCode) bool {
	return key <= KEYS_MAX_KEYS && in.keyboardPrevious.Keys[key]
}

func (in *Input) WasKeyUp(key KeyCode) bool {
	return !in.WasKeyDown(key)
}

// IsKeyPressed reports a key that went down during this frame.
func (in *Input) IsKeyPressed(key KeyCode) bool {
	return in.IsKeyDown(key) && in.WasKeyUp(key)
}

func (in *Input) ProcessKey(key KeyCode, pressed bool) {
	if key > KEYS_MAX_KEYS {
		return
	}
	// Only handle this if the state actually changed.
	if in.keyboardCurrent.Keys[key] == pressed {
		return
	}
	in.keyboardCurrent.Keys[key] = pressed

	code := EVENT_CODE_KEY_RELEASED
	if pressed {
		code = EVENT_CODE_KEY_PRESSED
	}
	in.fire(EventContext{
		Type: code,
		Data: &KeyEvent{KeyCode: key},
	})
}

func (in *Input) ProcessChar(char rune) {
	in.chars = append(in.chars, char)
}

// Chars returns the characters typed during this frame.
func (in *Input) Chars() []rune {
	return in.chars
}

// mouse input
func (in *Input) IsButtonDown(button Button) bool {
	return button < BUTTON_MAX_BUTTONS && in.mouseCurrent.Buttons[button]
}

func (in *Input) WasButtonDown(button Button) bool {
	return button < BUTTON_MAX_BUTTONS && in.mousePrevious.Buttons[button]
}

func (in *Input) GetMousePosition() (float64, float64) {
	return in.mouseCurrent.X, in.mouseCurrent.Y
}

func (in *Input) GetPreviousMousePosition() (float64, float64) {
	return in.mousePrevious.X, in.mousePrevious.Y
}

func (in *Input) ProcessButton(button Button, pressed bool) {
	if button >= BUTTON_MAX_BUTTONS || in.mouseCurrent.Buttons[button] == pressed {
		return
	}
	in.mouseCurrent.Buttons[button] = pressed

	code := EVENT_CODE_BUTTON_RELEASED
	if pressed {
		code = EVENT_CODE_BUTTON_PRESSED
	}
	in.fire(EventContext{
		Type: code,
		Data: &MouseEvent{Button: button},
	})
}

func (in *Input) ProcessMouseMove(x, y float64) {
	in.mouseCurrent.X = x
	in.mouseCurrent.Y = y
}

func (in *Input) ProcessMouseWheel(xOffset, yOffset float32) {
	in.scrollX += xOffset
	in.scrollY += yOffset
	in.fire(EventContext{
		Type: EVENT_CODE_MOUSE_WHEEL,
		Data: &MouseEvent{Scroll: yOffset},
	})
}

// GetMouseWheel returns the scroll accumulated during this frame.
func (in *Input) GetMouseWheel() (float32, float32) {
	return in.scrollX, in.scrollY
}

func (in *Input) fire(context EventContext) {
	if in.events != nil {
		in.events.Fire(context)
	}
}
