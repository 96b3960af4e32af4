package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var keywordsCount int

var keywordsCmd = &cobra.Command{
	Use:   "keywords <text...>",
	Short: "Show the strongest lexicon features of text",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runKeywords,
}

func init() {
	keywordsCmd.Flags().IntVarP(&keywordsCount, "count", "k", 10, "Number of keywords")
	rootCmd.AddCommand(keywordsCmd)
}

func runKeywords(cmd *cobra.Command, args []string) error {
	svc, err := openService(appCfg)
	if err != nil {
		return err
	}
	kws, err := svc.Keywords(strings.Join(args, " "), keywordsCount)
	if err != nil {
		return err
	}
	for _, kw := range kws {
		fmt.Fprintf(cmd.OutOrStdout(), "%-20s %.4f\n", kw.Term, kw.Weight)
	}
	return nil
}
