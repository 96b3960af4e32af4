package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"textcat/internal/classifier"
	"textcat/internal/service"
)

var packOut string

var packCmd = &cobra.Command{
	Use:   "pack [model-dir]",
	Short: "Encode a model directory as a portable blob",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPack,
}

func init() {
	packCmd.Flags().StringVarP(&packOut, "out", "o", "", "Write the blob to this file instead of stdout")
	rootCmd.AddCommand(packCmd)
}

func runPack(cmd *cobra.Command, args []string) error {
	dir := appCfg.Model.Dir
	if len(args) == 1 {
		dir = args[0]
	}
	opts, err := service.ClassifierOptions(appCfg, logger)
	if err != nil {
		return err
	}
	cls := classifier.New(opts)
	if err := cls.LoadModel(dir); err != nil {
		return err
	}
	blob, err := cls.MarshalString()
	if err != nil {
		return err
	}
	if packOut == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), blob)
		return err
	}
	return os.WriteFile(packOut, []byte(blob), 0o644)
}
