package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/toppers/mocktest/internal/llm"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and the configured model",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := llm.LoadConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "toppers %s (%s)\n", buildVersion(), runtime.Version())
		fmt.Fprintf(out, "llm     %s %s\n", cfg.Provider, configuredModel(cfg))
		return nil
	},
}

// buildVersion falls back to the module version recorded by go install.
func buildVersion() string {
	if version != "(devel)" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return version
}

func configuredModel(cfg llm.Config) string {
	switch cfg.Provider {
	case llm.ProviderGemini:
		return cfg.Gemini.Model
	case llm.ProviderOpenAI:
		return cfg.OpenAI.Model
	case llm.ProviderOpenRouter:
		return cfg.OpenRouter.Model
	case llm.ProviderAnthropic:
		return cfg.Anthropic.Model
	default:
		return "-"
	}
}
