package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toppers/mocktest/internal/feedback"
)

var feedbackCmd = &cobra.Command{
	Use:     "feedback",
	Short:   "Generate motivational feedback for a test result",
	Example: `  toppers feedback --score 15 --accuracy 75 --correct 15 --wrong 3 --skipped 2 --time 22.5 --easy 5 --medium 7 --hard 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := feedbackRequestFromFlags(cmd)
		asJSON, _ := cmd.Flags().GetBool("json")

		c, err := newContainer(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		res, err := c.Feedback.Generate(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("generate feedback: %w", err)
		}

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.Feedback)
		return nil
	},
}

func feedbackRequestFromFlags(cmd *cobra.Command) feedback.Request {
	f := cmd.Flags()
	var req feedback.Request
	req.Score, _ = f.GetFloat64("score")
	req.Accuracy, _ = f.GetFloat64("accuracy")
	req.CorrectAnswers, _ = f.GetInt("correct")
	req.WrongAnswers, _ = f.GetInt("wrong")
	req.SkippedAnswers, _ = f.GetInt("skipped")
	req.TimeTaken, _ = f.GetFloat64("time")
	req.DifficultyPerformance.Easy, _ = f.GetInt("easy")
	req.DifficultyPerformance.Medium, _ = f.GetInt("medium")
	req.DifficultyPerformance.Hard, _ = f.GetInt("hard")
	if f.Changed("total") {
		total, _ := f.GetInt("total")
		req = req.WithTotal(total)
	}
	return req
}

func init() {
	f := feedbackCmd.Flags()
	f.Float64("score", 0, "Score; may be fractional or negative under negative marking")
	f.Float64("accuracy", 0, "Accuracy in percent")
	f.Int("correct", 0, "Correct answers")
	f.Int("wrong", 0, "Wrong answers")
	f.Int("skipped", 0, "Skipped questions")
	f.Float64("time", 0, "Time taken in minutes")
	f.Int("easy", 0, "Correct easy answers")
	f.Int("medium", 0, "Correct medium answers")
	f.Int("hard", 0, "Correct hard answers")
	f.Int("total", 0, fmt.Sprintf("Total questions (default %d)", feedback.DefaultTotalQuestions))
	f.Bool("json", false, "Print the result as JSON")
}
