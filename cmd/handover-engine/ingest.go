// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/handover-engine/internal/ingest"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [docs-dir]",
	Short: "Build the vector index from a directory of documents",
	Long: `Ingest loads every supported document (.pdf, .docx, .md, .txt) in the
documents directory, splits it into overlapping chunks with inferred
metadata, embeds the chunks, and writes them to the vector index. Files
already in the index are replaced, so re-running ingest is safe.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()
	if len(args) == 1 {
		cfg.Ingest.DocsDir = args[0]
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return err
	}

	summary, err := ingest.IngestDir(context.Background(), store, embedder, cfg.Ingest, cfg.Retrieval, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Printf("ingest complete: %d indexed, %d skipped, %d failed\n",
		summary.Indexed, summary.Skipped, summary.Failed)
	if summary.HasFailures() {
		return fmt.Errorf("%d file(s) failed to ingest", summary.Failed)
	}
	return nil
}
