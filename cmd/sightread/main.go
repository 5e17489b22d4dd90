package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sightread",
	Short: "Practice reading sheet music",
	Long: `sightread shows a score one page at a time and listens to what you play on
a keyboard, a MIDI instrument or push buttons. Without a subcommand it opens
the trainer window.`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func main() {
	cobra.CheckErr(rootCmd.Execute())
}
