package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/sightread/sightread"
	"github.com/sightread/sightread/synth/sampler"
	"github.com/spf13/cobra"
)

var checkSamples string

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00C853")).Bold(true).Width(6)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#D50000")).Bold(true).Width(6)
	infoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

var checkCmd = &cobra.Command{
	Use:   "check [score files or directories]",
	Short: "Validate score files",
	Long: `Parses the scores and reports the ones that would be rejected by the
trainer. With --samples, only the pitches with a sample count as playable.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		var playable func(sightread.Pitch) bool
		if checkSamples != "" {
			s, err := sampler.Load(checkSamples, 1)
			if err != nil {
				return err
			}
			playable = s.HasNote
		}
		files, err := scoreFiles(args)
		if err != nil {
			return err
		}
		failed := 0
		for _, f := range files {
			score, err := sightread.ParseFile(f, playable, sightread.Renderable)
			if err != nil {
				failed++
				fmt.Println(failStyle.Render("FAIL"), f, infoStyle.Render(err.Error()))
				continue
			}
			info := fmt.Sprintf("%q, %d bars, %.0fs", score.Name, score.NumBars(), score.Duration())
			fmt.Println(okStyle.Render("OK"), f, infoStyle.Render(info))
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d scores are invalid", failed, len(files))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkSamples, "samples", "", "directory of <pitch>.wav samples to check playability against")
}
