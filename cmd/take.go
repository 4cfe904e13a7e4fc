package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/toppers/mocktest/internal/mcqtest"
	"github.com/toppers/mocktest/internal/testfile"
	"github.com/toppers/mocktest/internal/tui"
)

var takeCmd = &cobra.Command{
	Use:   "take",
	Short: "Take an interactive mock test in the terminal",
	Long: `Take a mock test interactively. Without --subject and --chapter a form
asks for them. --from loads a saved test instead of generating one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		save, _ := cmd.Flags().GetString("save")

		c, err := newContainer(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		opts := tui.Options{
			Tests:    c.Tests,
			Feedback: c.Feedback,
			Context:  cmd.Context(),
		}

		if from != "" {
			test, err := testfile.Load(from)
			if err != nil {
				return err
			}
			opts.Test = test
		} else {
			subject, _ := cmd.Flags().GetString("subject")
			chapter, _ := cmd.Flags().GetString("chapter")
			opts.Request = mcqtest.NewRequest(subject, chapter)
			opts.Request.EasyCount, _ = cmd.Flags().GetInt("easy")
			opts.Request.MediumCount, _ = cmd.Flags().GetInt("medium")
			opts.Request.HardCount, _ = cmd.Flags().GetInt("hard")
		}

		// Log lines would draw over the alt screen. The ledger still
		// records every model call.
		c.Log.SetOutput(io.Discard)

		final, err := tui.Run(opts)
		if err != nil {
			return fmt.Errorf("run mock test: %w", err)
		}

		if score, done := final.Score(); done {
			fmt.Fprintf(cmd.OutOrStdout(), "Score %g/%d, accuracy %.2f%%\n", score.Score, score.Total(), score.Accuracy)
		}
		if save != "" && final.Test() != nil {
			if err := testfile.Save(save, final.Test()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Saved test to", save)
		}
		return nil
	},
}

func init() {
	addRequestFlags(takeCmd)
	takeCmd.Flags().String("from", "", "Take a saved test (.yaml or .json) instead of generating one")
	takeCmd.Flags().String("save", "", "Save the test to this file when done")
}
