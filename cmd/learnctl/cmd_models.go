package main

import (
	"fmt"
	"io"

	"github.com/cmlowerence/Learn-Better/internal/generation"
	"github.com/cmlowerence/Learn-Better/internal/platform/gemini"
	"github.com/spf13/cobra"
)

func newModelsCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List models each configured credential can generate content with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			exec, err := gemini.NewExecutor(newLogger(cmd, stderr), cfg.LLM)
			if err != nil {
				return err
			}

			failed := 0
			for _, key := range cfg.LLM.APIKeys {
				cred := generation.Credential(key)
				names, err := exec.ListModels(cmd.Context(), cred)
				if err != nil {
					failed++
					fmt.Fprintf(stderr, "%s: %v\n", cred, err)
					continue
				}
				fmt.Fprintf(stdout, "%s:\n", cred)
				if len(names) == 0 {
					fmt.Fprintln(stdout, "  (no compatible models)")
				}
				for _, name := range names {
					fmt.Fprintf(stdout, "  %s\n", name)
				}
			}

			if failed == len(cfg.LLM.APIKeys) {
				return errExit
			}
			return nil
		},
	}
}
