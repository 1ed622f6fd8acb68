package cpu

import "sync"

// KeyCount is the number of keys on the hex keypad.
const KeyCount = 16

// Keyboard reports the state of the hex keypad.
type Keyboard interface {
	IsPressed(key uint8) bool
	// PressedKey returns one held key. When several are held the choice must
	// be stable for the same key state.
	PressedKey() (uint8, bool)
}

var _ Keyboard = (*Keypad)(nil)

// Keypad is a Keyboard backed by plain key state that a frontend updates
// from its input events. It is safe for concurrent use.
type Keypad struct {
	mu   sync.Mutex
	keys [KeyCount]bool
}

func NewKeypad() *Keypad {
	return &Keypad{}
}

func (k *Keypad) Press(key uint8) {
	k.Set(key, true)
}

func (k *Keypad) Release(key uint8) {
	k.Set(key, false)
}

// Set ignores keys outside the keypad.
func (k *Keypad) Set(key uint8, pressed bool) {
	if key >= KeyCount {
		return
	}
	k.mu.Lock()
	k.keys[key] = pressed
	k.mu.Unlock()
}

func (k *Keypad) ReleaseAll() {
	k.mu.Lock()
	k.keys = [KeyCount]bool{}
	k.mu.Unlock()
}

func (k *Keypad) IsPressed(key uint8) bool {
	if key >= KeyCount {
		return false
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.keys[key]
}

// PressedKey returns the lowest held key.
func (k *Keypad) PressedKey() (uint8, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for i, pressed := range k.keys {
		if pressed {
			return uint8(i), true
		}
	}
	return 0, false
}
