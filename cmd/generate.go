package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillgauge/internal/assessment"
	"github.com/abhisek/skillgauge/internal/llm"
	"github.com/abhisek/skillgauge/internal/store"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one assessment and print it as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		role, _ := cmd.Flags().GetString("role")
		skills, _ := cmd.Flags().GetStringSlice("skills")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		demotion, _ := cmd.Flags().GetBool("demotion")

		svc, closeStore, err := buildService(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		spec := assessment.Spec{
			Role:       role,
			Skills:     skills,
			Difficulty: assessment.Difficulty(difficulty),
		}

		ctx := cmd.Context()
		var set *assessment.Set
		if demotion {
			set, err = svc.GenerateDemotion(ctx, spec)
		} else {
			set, err = svc.Generate(ctx, spec)
		}
		if err != nil {
			return err
		}

		return printJSON(set)
	},
}

func init() {
	generateCmd.Flags().String("role", "", "Role the assessment targets (required)")
	generateCmd.Flags().StringSlice("skills", nil, "Skills to cover (required)")
	generateCmd.Flags().String("difficulty", string(assessment.Beginner), "Difficulty: Beginner, Intermediate, or Advanced")
	generateCmd.Flags().Bool("demotion", false, "Generate the simplified demotion-sized assessment")
	generateCmd.MarkFlagRequired("role")
	generateCmd.MarkFlagRequired("skills")
}

// buildService wires a provider and service for one-shot CLI commands.
func buildService(cmd *cobra.Command) (*assessment.Service, func(), error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open oracle log: %w", err)
	}

	provider, err := llm.NewProviderFromEnv(cmd.Context(), st)
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("oracle provider not configured: %w", err)
	}

	svc := assessment.NewService(provider, assessment.DefaultConfig(), nil)
	return svc, func() { st.Close() }, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
