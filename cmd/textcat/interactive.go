package main

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"textcat/internal/tui"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Classify text in an interactive console",
	Args:  cobra.NoArgs,
	RunE:  runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	svc, err := openService(appCfg)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("textcat · %s · %d categories", filepath.Base(appCfg.Model.Dir), svc.NumCategories())
	m := tui.New(svc, svc.NumCategories(), title)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
