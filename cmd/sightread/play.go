package main

import (
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/sightread/sightread"
	"github.com/sightread/sightread/cmd"
	"github.com/sightread/sightread/oto"
	"github.com/sightread/sightread/trainer"
	"github.com/sightread/sightread/trainer/ebitenui"
	"github.com/spf13/cobra"
)

var playFlags struct {
	scores     string
	backend    string
	midiInput  string
	fullscreen bool
	tps        int
	cpuprofile string
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the trainer window",
	Args:  cobra.NoArgs,
	RunE:  runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	for _, c := range []*cobra.Command{rootCmd, playCmd} {
		f := c.Flags()
		f.StringVar(&playFlags.scores, "scores", "", "directory of the score library")
		f.StringVar(&playFlags.backend, "backend", "", fmt.Sprintf("sound backend, one of %v", cmd.SynthNames()))
		f.StringVar(&playFlags.midiInput, "midi-input", "", "connect MIDI input to matching device name prefix")
		f.BoolVar(&playFlags.fullscreen, "fullscreen", false, "start in fullscreen")
		f.IntVar(&playFlags.tps, "tps", 0, "frames per second")
		f.StringVar(&playFlags.cpuprofile, "cpuprofile", "", "write cpu profile to `file`")
	}
}

func runPlay(c *cobra.Command, args []string) error {
	prefs := trainer.MakePreferences()
	alerts := &trainer.Alerts{}
	if prefs.YmlError != nil {
		log.Printf("could not read preferences.yml: %v", prefs.YmlError)
		alerts.Add("preferences.yml is invalid, using defaults", trainer.Warning, 5*time.Second)
	}
	applyPlayFlags(c, &prefs)
	if playFlags.cpuprofile != "" {
		f, err := os.Create(playFlags.cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}
	synth, err := cmd.NewSynth(prefs.Sound)
	if err != nil {
		return err
	}
	if prefs.Sound.Backend != "none" {
		audioContext, err := oto.NewContext(time.Duration(prefs.Sound.Latency) * time.Millisecond)
		if err != nil {
			return err
		}
		defer audioContext.Close()
		if err := audioContext.Play(synth); err != nil {
			return err
		}
	}
	keymap, err := ebitenui.LoadKeymap()
	if err != nil {
		return err
	}
	input, quit, closeInputs := openInputs(prefs.Input, keymap, alerts)
	defer closeInputs()
	library, err := trainer.LoadLibrary(prefs.Scores, synth.HasNote, sightread.Renderable, alerts)
	if err != nil {
		log.Printf("could not load scores: %v", err)
		alerts.Add(fmt.Sprintf("No score library at %s", prefs.Scores), trainer.Error, 5*time.Second)
	}
	env := &trainer.Env{
		Trigger: synth,
		Input:   input,
		Layout:  trainer.DefaultLayout(),
		Alerts:  alerts,
		Library: library,
	}
	fps := prefs.FPS()
	nav := trainer.NewNavigator(trainer.NewMenu(env, "sightread", fps))
	host := ebitenui.NewHost(nav, env, keymap, fps)
	host.QuitPressed = quit
	return ebitenui.Run(host, prefs.Window)
}

func applyPlayFlags(c *cobra.Command, prefs *trainer.Preferences) {
	f := c.Flags()
	if f.Changed("scores") {
		prefs.Scores = playFlags.scores
	}
	if f.Changed("backend") {
		prefs.Sound.Backend = playFlags.backend
	}
	if f.Changed("midi-input") {
		prefs.Input.MIDI = true
		prefs.Input.MIDIDevice = playFlags.midiInput
	}
	if f.Changed("fullscreen") {
		prefs.Window.Fullscreen = playFlags.fullscreen
	}
	if f.Changed("tps") {
		prefs.Window.TPS = playFlags.tps
	}
}

// openInputs opens every input enabled in the preferences. Inputs that fail
// to open are reported as alerts and left out.
func openInputs(prefs trainer.InputPreferences, keymap ebitenui.Keymap, alerts *trainer.Alerts) (input trainer.MultiInput, quit func() bool, closer func()) {
	var closers []func()
	closer = func() {
		for _, c := range closers {
			c()
		}
	}
	if prefs.Keyboard {
		input = append(input, ebitenui.NewKeyboard(keymap))
	}
	if prefs.MIDI {
		ch := trainer.NewChannelInput(1024, midiPitches())
		midiContext := cmd.NewMidiContext(ch)
		closers = append(closers, midiContext.Close)
		if device, ok := trainer.FindMIDIDeviceByPrefix(midiContext, prefs.MIDIDevice); ok {
			if err := device.Open(); err != nil {
				log.Printf("failed to open MIDI input '%s': %v", device, err)
				alerts.Add(fmt.Sprintf("Could not open %s", device), trainer.Error, 5*time.Second)
			}
		} else {
			log.Printf("no MIDI input device found with prefix '%s' (%v)", prefs.MIDIDevice, midiContext.Support())
			alerts.Add("No MIDI input found", trainer.Warning, 5*time.Second)
		}
		input = append(input, ch)
	}
	if prefs.Buttons {
		buttons, quitPressed, err := cmd.OpenButtons(prefs)
		if err != nil {
			log.Printf("could not open push buttons: %v", err)
			alerts.Add("Could not open the push buttons", trainer.Error, 5*time.Second)
		} else {
			closers = append(closers, func() { buttons.Close() })
			input = append(input, buttons)
			quit = quitPressed
		}
	}
	return input, quit, closer
}

// midiPitches returns every pitch a MIDI note can have.
func midiPitches() sightread.PitchSet {
	ret := sightread.PitchSet{}
	for k := 0; k < 128; k++ {
		if p := sightread.PitchFromMIDIKey(byte(k)); !p.IsRest() {
			ret.Add(p)
		}
	}
	return ret
}
