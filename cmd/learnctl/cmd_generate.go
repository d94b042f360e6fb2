package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cmlowerence/Learn-Better/internal/domain"
	"github.com/cmlowerence/Learn-Better/internal/generation"
	"github.com/cmlowerence/Learn-Better/internal/platform/gemini"
	"github.com/spf13/cobra"
)

func newGenerateCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		count      int
		difficulty string
		focus      string
		kind       string
	)

	cmd := &cobra.Command{
		Use:   "generate <topic>",
		Short: "Generate quiz items or flashcards and print them as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputKind, err := domain.ParseOutputKind(kind)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			generator, err := gemini.NewGenerator(newLogger(cmd, stderr), cfg.LLM)
			if err != nil {
				return err
			}

			out, err := generator.Generate(cmd.Context(), generation.Request{
				Topic:      args[0],
				ItemCount:  count,
				Difficulty: difficulty,
				Focus:      focus,
				Kind:       outputKind,
			})
			if err != nil {
				if k, ok := generation.KindOf(err); ok {
					fmt.Fprintf(stderr, "learnctl: generation failed (%s): %v\n", k, err)
					return errExit
				}
				return err
			}

			fmt.Fprintf(stderr, "model %s, %d items, %d attempts\n", out.Model, out.Len(), out.Attempts)

			enc := json.NewEncoder(stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out.Items())
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", generation.DefaultItemCount, "Number of items to request")
	cmd.Flags().StringVar(&difficulty, "difficulty", generation.DefaultDifficulty, "Difficulty passed to the model")
	cmd.Flags().StringVar(&focus, "focus", generation.DefaultFocus, "Focus passed to the model (concept, numerical, ...)")
	cmd.Flags().StringVarP(&kind, "kind", "k", string(domain.KindQuiz), "Output kind: quiz or flashcard")

	return cmd
}
