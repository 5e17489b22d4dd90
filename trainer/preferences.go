package trainer

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sightread/sightread"
	"gopkg.in/yaml.v3"
)

type (
	Preferences struct {
		Window   WindowPreferences
		Scores   string // directory of the score library
		Sound    SoundPreferences
		Input    InputPreferences
		YmlError error `yaml:"-"`
	}

	WindowPreferences struct {
		Scale      int  // the 320x240 screen is scaled by this for the window
		TPS        int  // frames per second
		Fullscreen bool `yaml:",omitempty"`
	}

	SoundPreferences struct {
		Backend   string  // "sampler", "soundfont" or "none"
		Samples   string  // directory of <pitch>.wav files for the sampler
		SoundFont string  // .sf2 file for the soundfont backend
		Gain      float32 // master gain
		Latency   int     // audio buffer length in milliseconds
	}

	InputPreferences struct {
		Keyboard   bool         // computer keyboard, see keybindings.yml
		MIDI       bool         // the first MIDI input, or the one named by MIDIDevice
		MIDIDevice string       `yaml:",omitempty"`
		Buttons    bool         // push buttons on GPIO port expanders
		Debounce   int          // polls a button is ignored for after it changes
		QuitChip   string       `yaml:",omitempty"`
		QuitLine   int          `yaml:",omitempty"`
		Banks      []ButtonBank `yaml:",omitempty"`
	}

	// ButtonBank maps the lines of one GPIO chip to pitches. Buttons are
	// active low.
	ButtonBank struct {
		Chip  string
		Lines map[sightread.Pitch]int
	}
)

//go:embed preferences.yml
var defaultPreferencesYaml []byte

func loadDefaultPreferences() Preferences {
	var preferences Preferences
	dec := yaml.NewDecoder(bytes.NewReader(defaultPreferencesYaml))
	dec.KnownFields(true)
	if err := dec.Decode(&preferences); err != nil {
		panic(fmt.Errorf("failed to unmarshal preferences: %w", err))
	}
	return preferences
}

// ReadCustomConfigYml reads a file from the user's configuration directory
// into target, which needs to be a pointer. Fields missing from the file keep
// their values.
func ReadCustomConfigYml(filename string, target any) (exists bool, err error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return false, err
	}
	path := filepath.Join(configDir, "sightread", filename)
	b, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return true, yaml.Unmarshal(b, target)
}

// MakePreferences returns the default preferences overridden by the user's
// preferences.yml, if there is one. A malformed user file is reported in
// YmlError.
func MakePreferences() Preferences {
	preferences := loadDefaultPreferences()
	exists, err := ReadCustomConfigYml("preferences.yml", &preferences)
	if exists {
		preferences.YmlError = err
	}
	return preferences
}

// FPS returns the preferred frame rate, defaulting to 30.
func (p Preferences) FPS() int {
	if p.Window.TPS <= 0 {
		return 30
	}
	return p.Window.TPS
}
