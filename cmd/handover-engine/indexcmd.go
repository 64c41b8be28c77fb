// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/handover-engine/internal/index"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Inspect or query the vector index",
}

// --- status subcommand ---

var indexStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show chunk counts and ingest details",
	RunE:  runIndexStatus,
}

func runIndexStatus(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()

	total, err := store.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("indexed chunks: %d\n", total)

	sources, err := store.Sources(ctx)
	if err != nil {
		return err
	}
	if len(sources) > 0 {
		fmt.Println("\nper source:")
		for _, sc := range sources {
			fmt.Printf("  %-50s %d\n", sc.Source, sc.Chunks)
		}
	}

	if m, ok, err := index.ReadManifest(cfg.Retrieval.IndexDir); err == nil && ok {
		fmt.Printf("\nlast ingest: %s (embedding model %s, %d documents)\n",
			m.GeneratedAt.Format("2006-01-02 15:04:05"), m.EmbeddingModel, len(m.Documents))
	}
	return nil
}

// --- search subcommand ---

var indexSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Run a raw similarity search against the index",
	Long: `Search embeds the query and prints the nearest chunks without running
the agent pipeline. Useful for checking what the retrieval stage will see.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIndexSearch,
}

func runIndexSearch(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()
	warnStaleIndex(cfg)

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	k, _ := cmd.Flags().GetInt("top")
	withScores, _ := cmd.Flags().GetBool("scores")
	query := strings.Join(args, " ")

	scored, err := store.SearchWithScore(context.Background(), query, k)
	if err != nil {
		return err
	}
	if len(scored) == 0 {
		fmt.Println("no results")
		return nil
	}

	for i, sc := range scored {
		excerpt := sc.Chunk.Content
		if runes := []rune(excerpt); len(runes) > 120 {
			excerpt = string(runes[:120]) + "..."
		}
		excerpt = strings.ReplaceAll(excerpt, "\n", " ")

		if withScores {
			fmt.Printf("%2d. [%.4f] %s\n    %s\n", i+1, sc.Score, sc.Chunk.Metadata.Source, excerpt)
		} else {
			fmt.Printf("%2d. %s\n    %s\n", i+1, sc.Chunk.Metadata.Source, excerpt)
		}
	}
	return nil
}

func init() {
	indexSearchCmd.Flags().Int("top", 0, "number of results (default: configured top-k)")
	indexSearchCmd.Flags().Bool("scores", false, "print cosine similarity scores")

	indexCmd.AddCommand(indexStatusCmd)
	indexCmd.AddCommand(indexSearchCmd)
	rootCmd.AddCommand(indexCmd)
}
