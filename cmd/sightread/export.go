package main

import (
	"bytes"
	"fmt"

	"github.com/sightread/sightread"
	"github.com/spf13/cobra"
)

var exportDirectory string

var exportCmd = &cobra.Command{
	Use:   "export [score files or directories]",
	Short: "Convert scores to Standard MIDI Files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		files, err := scoreFiles(args)
		if err != nil {
			return err
		}
		for _, f := range files {
			score, err := sightread.ParseFile(f, nil, nil)
			if err != nil {
				return fmt.Errorf("could not parse %v: %w", f, err)
			}
			var buf bytes.Buffer
			if err := score.WriteSMF(&buf); err != nil {
				return fmt.Errorf("could not convert %v: %w", f, err)
			}
			out, err := output(f, exportDirectory, ".mid", buf.Bytes())
			if err != nil {
				return err
			}
			fmt.Println(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportDirectory, "output", "o", "", "directory where to output the files; by default next to the scores")
}
