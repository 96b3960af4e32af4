package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"textcat/internal/config"
	"textcat/internal/domain"
	"textcat/internal/service"
)

var (
	classifyTop   int
	classifyFiles []string
	classifyJSON  bool
)

var classifyCmd = &cobra.Command{
	Use:   "classify [text...]",
	Short: "Classify text or files",
	Long: `Classify text given as arguments, files given with --file, or stdin.

Examples:
  textcat classify "足球比赛今天开始"
  textcat classify --top 3 --file news.txt
  echo "stock market rally" | textcat classify --json`,
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().IntVarP(&classifyTop, "top", "n", 0, "Number of categories to show (default from config)")
	classifyCmd.Flags().StringSliceVarP(&classifyFiles, "file", "f", nil, "Classify these files instead of arguments")
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "Output results as JSON")
	rootCmd.AddCommand(classifyCmd)
}

type classifyOutput struct {
	Source  string               `json:"source"`
	Results []domain.NamedResult `json:"results"`
}

func runClassify(cmd *cobra.Command, args []string) error {
	svc, err := openService(appCfg)
	if err != nil {
		return err
	}
	top := classifyTop
	if top <= 0 {
		top = appCfg.Classify.TopN
	}

	var outputs []classifyOutput
	switch {
	case len(classifyFiles) > 0:
		for _, path := range classifyFiles {
			res, err := svc.ClassifyFile(path, top)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			outputs = append(outputs, classifyOutput{Source: path, Results: res})
		}
	default:
		text := strings.Join(args, " ")
		source := "args"
		if text == "" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			text, source = string(data), "stdin"
		}
		res, err := svc.TopN(text, top)
		if err != nil {
			return err
		}
		outputs = append(outputs, classifyOutput{Source: source, Results: res})
	}

	out := cmd.OutOrStdout()
	if classifyJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(outputs)
	}
	for _, o := range outputs {
		if len(outputs) > 1 {
			fmt.Fprintf(out, "%s\n", o.Source)
		}
		for _, r := range o.Results {
			fmt.Fprintf(out, "%-12s %.4f\n", r.Category, r.Probability)
		}
	}
	return nil
}

// openService loads the model from --blob when set, otherwise from the
// configured model directory.
func openService(cfg *config.AppConfig) (*service.NewsService, error) {
	if blobPath == "" {
		return service.Open(cfg, logger)
	}
	data, err := os.ReadFile(blobPath)
	if err != nil {
		return nil, err
	}
	return service.OpenBlob(cfg, strings.TrimSpace(string(data)), logger)
}
