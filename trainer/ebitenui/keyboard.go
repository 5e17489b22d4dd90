package ebitenui

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sightread/sightread"
	"github.com/sightread/sightread/trainer"
	"gopkg.in/yaml.v3"
)

type (
	// KeyBinding binds a key either to a pitch or to an action. A binding
	// with neither unbinds the key.
	KeyBinding struct {
		Key    string
		Pitch  sightread.Pitch `yaml:",omitempty"`
		Action string          `yaml:",omitempty"`
	}

	// Keymap is the result of applying a list of KeyBindings in order.
	Keymap struct {
		Pitches map[ebiten.Key]sightread.Pitch
		Actions map[ebiten.Key]string
	}
)

const (
	QuitAction       = "Quit"
	FullscreenAction = "Fullscreen"
)

//go:embed keybindings.yml
var defaultKeyBindings []byte

// LoadKeymap returns the default keymap, with the bindings in the user's
// keybindings.yml applied on top of it.
func LoadKeymap() (Keymap, error) {
	var keyBindings, userKeyBindings []KeyBinding
	dec := yaml.NewDecoder(bytes.NewReader(defaultKeyBindings))
	dec.KnownFields(true)
	if err := dec.Decode(&keyBindings); err != nil {
		panic(fmt.Errorf("failed to unmarshal default keybindings: %w", err))
	}
	if exists, err := trainer.ReadCustomConfigYml("keybindings.yml", &userKeyBindings); exists {
		if err != nil {
			return Keymap{}, fmt.Errorf("failed to read keybindings.yml: %w", err)
		}
		keyBindings = append(keyBindings, userKeyBindings...)
	}
	return MakeKeymap(keyBindings)
}

// MakeKeymap applies the bindings in order; later bindings of a key replace
// earlier ones.
func MakeKeymap(bindings []KeyBinding) (Keymap, error) {
	ret := Keymap{Pitches: map[ebiten.Key]sightread.Pitch{}, Actions: map[ebiten.Key]string{}}
	for _, kb := range bindings {
		var key ebiten.Key
		if err := key.UnmarshalText([]byte(kb.Key)); err != nil {
			return Keymap{}, fmt.Errorf("unknown key %q: %w", kb.Key, err)
		}
		delete(ret.Pitches, key)
		delete(ret.Actions, key)
		switch {
		case kb.Pitch != "":
			if !kb.Pitch.Valid() {
				return Keymap{}, fmt.Errorf("key %s is bound to invalid pitch %q", kb.Key, kb.Pitch)
			}
			ret.Pitches[key] = kb.Pitch
		case kb.Action != "":
			ret.Actions[key] = kb.Action
		}
	}
	return ret, nil
}

// NewKeyboard returns an input reading the pitch keys of the keymap.
func NewKeyboard(km Keymap) *trainer.KeyInput[ebiten.Key] {
	return trainer.NewKeyInput(km.Pitches, ebiten.IsKeyPressed, 0)
}
