package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillgauge/internal/assessment"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [submission.json]",
	Short: "Evaluate a submission file (or stdin) and print the feedback report",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var input io.Reader = os.Stdin
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open submission: %w", err)
			}
			defer f.Close()
			input = f
		}

		var batch assessment.SubmissionBatch
		if err := json.NewDecoder(input).Decode(&batch); err != nil {
			return fmt.Errorf("parse submission: %w", err)
		}

		// When the caller still has the generated set, cross-check the
		// answers against it before spending an oracle call.
		if setPath, _ := cmd.Flags().GetString("set"); setPath != "" {
			set, err := loadSet(setPath)
			if err != nil {
				return err
			}
			if err := batch.VerifyAgainst(set); err != nil {
				return err
			}
		}

		svc, closeStore, err := buildService(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		eval, err := svc.Evaluate(cmd.Context(), batch)
		if err != nil {
			return err
		}

		return printJSON(eval)
	},
}

func init() {
	evaluateCmd.Flags().String("set", "", "Path to the generated assessment JSON; answers are verified against it before evaluation")
}

func loadSet(path string) (*assessment.Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open assessment set: %w", err)
	}
	defer f.Close()

	var set assessment.Set
	if err := json.NewDecoder(f).Decode(&set); err != nil {
		return nil, fmt.Errorf("parse assessment set: %w", err)
	}
	return &set, nil
}
