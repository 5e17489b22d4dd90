package main

import (
	"bytes"
	"fmt"

	"github.com/sightread/sightread"
	"github.com/sightread/sightread/cmd"
	"github.com/sightread/sightread/trainer"
	"github.com/spf13/cobra"
)

var renderFlags struct {
	directory string
	backend   string
	pcm       bool
	pace      float64
	fps       int
	tail      float64
}

var renderCmd = &cobra.Command{
	Use:   "render [score files or directories]",
	Short: "Render scores to .wav files",
	Long: `Plays the scores through the sound backend offline, the way the training
mode would play them, and saves the audio as .wav files.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		prefs := trainer.MakePreferences()
		if c.Flags().Changed("backend") {
			prefs.Sound.Backend = renderFlags.backend
		}
		synth, err := cmd.NewSynth(prefs.Sound)
		if err != nil {
			return err
		}
		files, err := scoreFiles(args)
		if err != nil {
			return err
		}
		for _, f := range files {
			score, err := sightread.ParseFile(f, synth.HasNote, nil)
			if err != nil {
				return fmt.Errorf("could not parse %v: %w", f, err)
			}
			buffer, err := trainer.Render(score, synth, renderFlags.fps, renderFlags.pace, renderFlags.tail)
			if err != nil {
				return fmt.Errorf("could not render %v: %w", f, err)
			}
			var wav bytes.Buffer
			if err := sightread.WriteWav(&wav, buffer, renderFlags.pcm); err != nil {
				return fmt.Errorf("could not generate .wav file: %w", err)
			}
			out, err := output(f, renderFlags.directory, ".wav", wav.Bytes())
			if err != nil {
				return err
			}
			fmt.Println(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	f := renderCmd.Flags()
	f.StringVarP(&renderFlags.directory, "output", "o", "", "directory where to output the files; by default next to the scores")
	f.StringVar(&renderFlags.backend, "backend", "", fmt.Sprintf("sound backend, one of %v", cmd.SynthNames()))
	f.BoolVarP(&renderFlags.pcm, "pcm", "c", false, "convert audio to 16-bit signed PCM")
	f.Float64Var(&renderFlags.pace, "pace", 1, "playback rate")
	f.IntVar(&renderFlags.fps, "fps", 30, "frames per second the score is advanced at")
	f.Float64Var(&renderFlags.tail, "tail", 1, "seconds of audio after the last note")
}
