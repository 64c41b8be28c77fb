// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// quitWords terminate the interactive session.
var quitWords = map[string]bool{
	"quit": true,
	"exit": true,
	"q":    true,
	"종료":   true,
	"끝":    true,
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive question-and-answer session",
	Long: `Chat reads questions from standard input in a loop and answers each one
through the agent pipeline. Enter "quit", "exit" or "q" to leave.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()
	warnStaleIndex(cfg)

	p, closeStore, err := buildPipeline(cfg, true)
	if err != nil {
		return err
	}
	defer closeStore()

	rule := strings.Repeat("=", 60)
	fmt.Println(rule)
	fmt.Println("Administrative document assistant")
	fmt.Println(rule)
	fmt.Println("Type a question and press enter. Enter quit, exit or q to leave.")
	fmt.Println(rule)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nquestion> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			fmt.Println("please enter a question")
			continue
		}
		if quitWords[strings.ToLower(question)] {
			fmt.Println("goodbye")
			break
		}

		printResult(p.Run(context.Background(), question))
	}

	return scanner.Err()
}
