package main

import (
	"fmt"

	"github.com/sightread/sightread"
	"github.com/sightread/sightread/trainer"
	"github.com/spf13/cobra"
)

var gradeFlags struct {
	wrong, early, frames, fps int
}

var gradeCmd = &cobra.Command{
	Use:   "grade score-file",
	Short: "Grade a game session from its counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		score, err := sightread.ParseFile(args[0], nil, nil)
		if err != nil {
			return err
		}
		r := trainer.Grade(gradeFlags.wrong, gradeFlags.early, gradeFlags.frames, score, gradeFlags.fps)
		fmt.Println("Grade:", r.Letter)
		for _, line := range r.Lines() {
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(gradeCmd)
	f := gradeCmd.Flags()
	f.IntVar(&gradeFlags.wrong, "wrong", 0, "wrong notes played")
	f.IntVar(&gradeFlags.early, "early", 0, "notes released early")
	f.IntVar(&gradeFlags.frames, "frames", 0, "frames the session took")
	f.IntVar(&gradeFlags.fps, "fps", 30, "frame rate of the session")
	gradeCmd.MarkFlagRequired("frames")
}
