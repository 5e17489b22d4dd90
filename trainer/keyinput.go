package trainer

import (
	"github.com/sightread/sightread"
)

type (
	// KeyInput turns a set of polled on/off keys into pitch presses and
	// releases. K is whatever identifies a key: an ebiten.Key for the
	// computer keyboard, a line offset for push buttons.
	//
	// After a key changes state, further changes of that key are ignored for
	// Debounce polls, which filters out the chatter of mechanical contacts.
	KeyInput[K comparable] struct {
		keys     map[K]sightread.Pitch
		pressed  func(K) bool
		debounce int
		state    map[K]keyState
		updates  map[sightread.Pitch]bool
	}

	keyState struct {
		down     bool
		cooldown int
	}
)

// NewKeyInput creates an input reading the keys with pressed, which should
// return true when the key is held down.
func NewKeyInput[K comparable](keys map[K]sightread.Pitch, pressed func(K) bool, debounce int) *KeyInput[K] {
	ret := &KeyInput[K]{
		keys:     keys,
		pressed:  pressed,
		debounce: max(debounce, 0),
		state:    make(map[K]keyState, len(keys)),
		updates:  map[sightread.Pitch]bool{},
	}
	for k := range keys {
		ret.state[k] = keyState{cooldown: ret.debounce}
	}
	return ret
}

func (k *KeyInput[K]) Poll() {
	for key, pitch := range k.keys {
		s := k.state[key]
		if s.cooldown > 0 {
			s.cooldown--
		}
		if down := k.pressed(key); down != s.down && s.cooldown == 0 {
			s.down = down
			s.cooldown = k.debounce
			k.updates[pitch] = down
		}
		k.state[key] = s
	}
}

func (k *KeyInput[K]) Updates() map[sightread.Pitch]bool {
	ret := k.updates
	k.updates = map[sightread.Pitch]bool{}
	return ret
}

func (k *KeyInput[K]) PlayablePitches() sightread.PitchSet {
	ret := sightread.PitchSet{}
	for _, p := range k.keys {
		ret.Add(p)
	}
	return ret
}

// Held returns the pitches whose keys are currently down, after debouncing.
func (k *KeyInput[K]) Held() sightread.PitchSet {
	ret := sightread.PitchSet{}
	for key, s := range k.state {
		if s.down {
			ret.Add(k.keys[key])
		}
	}
	return ret
}
