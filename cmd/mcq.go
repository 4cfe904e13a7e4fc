package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toppers/mocktest/internal/mcqtest"
	"github.com/toppers/mocktest/internal/testfile"
)

var mcqCmd = &cobra.Command{
	Use:   "mcq",
	Short: "Generate a multiple-choice mock test",
	Example: `  toppers mcq --subject Physics --chapter Optics --easy 2 --medium 2 --hard 1
  toppers mcq --subject Chemistry --chapter "Acids, Bases and Salts" --out acids.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := requestFromFlags(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("out")

		c, err := newContainer(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		test, err := c.Tests.Generate(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("generate test: %w", err)
		}

		if out != "" {
			if err := testfile.Save(out, test); err != nil {
				return err
			}
			logger.WithField("path", out).Info("test saved")
		}
		return writeTest(cmd.OutOrStdout(), test, format)
	},
}

func requestFromFlags(cmd *cobra.Command) (mcqtest.Request, error) {
	subject, _ := cmd.Flags().GetString("subject")
	chapter, _ := cmd.Flags().GetString("chapter")
	if strings.TrimSpace(subject) == "" || strings.TrimSpace(chapter) == "" {
		return mcqtest.Request{}, fmt.Errorf("--subject and --chapter are required")
	}

	req := mcqtest.NewRequest(subject, chapter)
	req.EasyCount, _ = cmd.Flags().GetInt("easy")
	req.MediumCount, _ = cmd.Flags().GetInt("medium")
	req.HardCount, _ = cmd.Flags().GetInt("hard")
	return req, nil
}

// writeTest prints test as text (numbered questions with the key), json or
// yaml.
func writeTest(w io.Writer, test *mcqtest.Test, format string) error {
	switch format {
	case "json":
		return testfile.Encode(w, test, testfile.FormatJSON)
	case "yaml":
		return testfile.Encode(w, test, testfile.FormatYAML)
	case "text", "":
	default:
		return fmt.Errorf("unknown format %q: want text, json or yaml", format)
	}

	fmt.Fprintf(w, "%s: %s (%d questions)\n", test.Subject, test.Chapter, len(test.Questions))
	fmt.Fprintln(w, strings.Repeat("─", 60))
	for i, q := range test.Questions {
		fmt.Fprintf(w, "\n%d. [%s] %s\n", i+1, q.Difficulty, q.Question)
		for j, opt := range q.Options {
			marker := " "
			if opt == q.CorrectAnswer {
				marker = "*"
			}
			fmt.Fprintf(w, "  %s %c) %s\n", marker, 'A'+j, opt)
		}
	}
	return nil
}

func addRequestFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("subject", "s", "", "Subject, e.g. Physics")
	cmd.Flags().StringP("chapter", "c", "", "Chapter within the subject, e.g. Optics")
	cmd.Flags().Int("easy", mcqtest.DefaultEasyCount, "Number of easy questions")
	cmd.Flags().Int("medium", mcqtest.DefaultMediumCount, "Number of medium questions")
	cmd.Flags().Int("hard", mcqtest.DefaultHardCount, "Number of hard questions")
}

func init() {
	addRequestFlags(mcqCmd)
	mcqCmd.Flags().StringP("format", "f", "text", "Output format: text, json or yaml")
	mcqCmd.Flags().StringP("out", "o", "", "Also save the test to this file (.json or .yaml)")
}
