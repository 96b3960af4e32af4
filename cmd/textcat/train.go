package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"textcat/internal/service"
)

var (
	trainOut  string
	trainBlob string
)

var trainCmd = &cobra.Command{
	Use:   "train <corpus-dir>",
	Short: "Train a model from a labelled corpus",
	Long: `Train a model from a corpus laid out as <corpus-dir>/<category>/*.txt.
Category directories are numbered in name order.

Examples:
  textcat train ./corpus
  textcat train ./corpus --out news_model --blob-out news_model.b64`,
	Args: cobra.ExactArgs(1),
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().StringVarP(&trainOut, "out", "o", "", "Model directory to write (default from config)")
	trainCmd.Flags().StringVar(&trainBlob, "blob-out", "", "Also write the model as a portable blob to this file")
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, args []string) error {
	corpus, err := service.ScanCorpus(args[0])
	if err != nil {
		return err
	}
	opts, err := service.ClassifierOptions(appCfg, logger)
	if err != nil {
		return err
	}
	artifacts, err := service.TrainCorpus(corpus, appCfg.Model.Encoding, opts, service.TrainOptions(appCfg, logger))
	if err != nil {
		return err
	}

	out := trainOut
	if out == "" {
		out = appCfg.Model.Dir
	}
	if err := service.SaveTrained(out, artifacts, corpus.Categories); err != nil {
		return err
	}
	if trainBlob != "" {
		blob, err := artifacts.MarshalString()
		if err != nil {
			return err
		}
		if err := os.WriteFile(trainBlob, []byte(blob), 0o644); err != nil {
			return err
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "trained %d categories from %d documents into %s\n",
		corpus.Categories.Len(), corpus.NumDocuments(), filepath.Clean(out))
	return nil
}
