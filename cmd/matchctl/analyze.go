package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/analysis"
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/render"
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/security"
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/state"
	"github.com/spf13/cobra"
)

type analyzeOptions struct {
	resumeFile string
	jobFile    string
	mode       string
	lexicon    string
	asJSON     bool
	htmlFile   string
	theme      string
}

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a resume file against a job description file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.resumeFile, "resume", "r", "", "resume text file (- for stdin)")
	cmd.Flags().StringVarP(&opts.jobFile, "job", "j", "", "job description text file (- for stdin)")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "analyzer mode: keyword or fixture (default from config)")
	cmd.Flags().StringVar(&opts.lexicon, "lexicon", "", "named lexicon under <data_dir>/lexicons (default from config)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the report as JSON")
	cmd.Flags().StringVar(&opts.htmlFile, "html", "", "also write the rendered page to this file")
	cmd.Flags().StringVar(&opts.theme, "theme", string(state.ThemeDark), "page theme for --html: dark or light")

	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("job")

	return cmd
}

func runAnalyze(cmd *cobra.Command, root *rootOptions, opts *analyzeOptions) error {
	if opts.resumeFile == "-" && opts.jobFile == "-" {
		return fmt.Errorf("only one of --resume and --job can read stdin")
	}

	resumeText, err := readInput(cmd.InOrStdin(), opts.resumeFile)
	if err != nil {
		return err
	}
	jobText, err := readInput(cmd.InOrStdin(), opts.jobFile)
	if err != nil {
		return err
	}

	cfg := root.cfg
	sm := security.NewSecurityMiddleware(security.SecurityConfig{MaxInputChars: cfg.Analyzer.MaxInputChars})
	if appErr := sm.ValidatePair(resumeText, jobText, true); appErr != nil {
		return appErr
	}

	modeName := cfg.Analyzer.Mode
	if opts.mode != "" {
		modeName = opts.mode
	}
	mode, err := analysis.ParseMode(modeName)
	if err != nil {
		return err
	}

	lexName := cfg.Analyzer.Lexicon
	if opts.lexicon != "" {
		lexName = opts.lexicon
	}
	var lexicon *analysis.Lexicon
	if lexName != "" {
		if lexicon, err = analysis.NewLexiconStore(cfg.DataDir).Load(lexName); err != nil {
			return err
		}
	}

	producer, err := analysis.NewProducer(mode, lexicon, time.Now().Year())
	if err != nil {
		return err
	}

	st := state.New().
		WithTheme(state.Theme(opts.theme)).
		SetResumeText(resumeText).
		SetJobText(jobText).
		RunAnalysis(producer)

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(st.Report); err != nil {
			return err
		}
	} else if err := render.Text(out, st.Report); err != nil {
		return err
	}

	if opts.htmlFile != "" {
		return writePage(opts.htmlFile, st)
	}
	return nil
}

func readInput(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func writePage(path string, st state.State) error {
	nonce, err := security.GenerateNonce()
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := render.HTML(file, render.Page{State: st, Nonce: nonce}); err != nil {
		return err
	}
	return file.Close()
}
