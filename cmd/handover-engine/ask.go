// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/handover-engine/pkg/types"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single question and print the answer",
	Long: `Ask runs one question through the agent pipeline and prints the answer,
any verification warnings, and retrieval statistics. The result is saved
under the results directory unless --no-save is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().Bool("no-save", false, "do not write the result to the results directory")

	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()
	warnStaleIndex(cfg)

	noSave, _ := cmd.Flags().GetBool("no-save")

	p, closeStore, err := buildPipeline(cfg, !noSave)
	if err != nil {
		return err
	}
	defer closeStore()

	printResult(p.Run(context.Background(), strings.Join(args, " ")))
	return nil
}

// printResult renders a final state for the terminal.
func printResult(state types.State) {
	rule := strings.Repeat("=", 60)
	thin := strings.Repeat("-", 60)

	fmt.Println(rule)
	fmt.Println("Answer")
	fmt.Println(rule)
	fmt.Println(state.Draft.Answer)

	if len(state.Verification.Warnings) > 0 {
		fmt.Println()
		fmt.Println(thin)
		fmt.Println("Notes")
		fmt.Println(thin)
		for _, w := range state.Verification.Warnings {
			fmt.Printf("  - %s\n", w)
		}
	}

	r := state.Retrieval
	if len(r.SearchResults)+len(r.Templates)+len(r.Examples)+len(r.Related) > 0 {
		fmt.Println()
		fmt.Println(thin)
		fmt.Println("Reference documents")
		fmt.Println(thin)
		fmt.Printf("  search results: %d\n", len(r.SearchResults))
		fmt.Printf("  templates:      %d\n", len(r.Templates))
		fmt.Printf("  examples:       %d\n", len(r.Examples))
		fmt.Printf("  related:        %d\n", len(r.Related))
	}

	fmt.Println(rule)

	if !state.Verification.Verified {
		fmt.Fprintln(os.Stderr, "note: the answer did not pass all quality checks")
	}
}
