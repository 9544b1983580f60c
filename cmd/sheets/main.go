// Package main provides the CLI entry point for cli-sheets.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/treykane/cli-sheets/internal/app"
	"github.com/treykane/cli-sheets/internal/codec"
	"github.com/treykane/cli-sheets/internal/config"
	"github.com/treykane/cli-sheets/internal/layout"
	"github.com/treykane/cli-sheets/internal/logging"
	"github.com/treykane/cli-sheets/internal/session"
)

var log = logging.New("main")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		outputPath string
		sheet      int
	)

	rootCmd := &cobra.Command{
		Use:   "sheets [file]",
		Short: "View and edit Excel workbooks in the terminal",
		Long: `sheets opens .xlsx and .xls workbooks in a terminal spreadsheet view.
Cells, headers, rows and columns can be edited, moved and copied, and the
workbook exported back to .xlsx.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := tuiOptions(args, outputPath, sheet)
			if err != nil {
				return err
			}
			p := tea.NewProgram(app.New(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
			_, err = p.Run()
			return err
		},
	}
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Export path (default: config export_name or "+codec.DefaultExportName+")")
	rootCmd.Flags().IntVar(&sheet, "sheet", 0, "Sheet index to show after loading (0-based)")

	rootCmd.AddCommand(newInfoCmd(), newExportCmd())
	return rootCmd
}

func tuiOptions(args []string, outputPath string, sheet int) (app.Options, error) {
	if sheet < 0 {
		return app.Options{}, fmt.Errorf("invalid --sheet %d: must not be negative", sheet)
	}
	cfg, err := loadConfig()
	if err != nil {
		return app.Options{}, err
	}
	opts := app.Options{
		ExportPath: outputPath,
		Sheet:      sheet,
		Config:     cfg,
	}
	if len(args) == 1 {
		opts.Path = args[0]
	}
	if statePath, err := config.StatePath(); err == nil {
		opts.StatePath = statePath
	} else {
		log.Warn("resolve state path", "error", err)
	}
	return opts, nil
}

// loadConfig returns the saved config, or the defaults on first run.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNotConfigured) {
		return config.Default(), nil
	}
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Print the size of every sheet in a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printInfo(cmd.OutOrStdout(), args[0])
		},
	}
}

// printInfo writes one "<name> | R rows × C cols" line per sheet.
func printInfo(out io.Writer, path string) error {
	sheets, err := codec.ReadFile(path)
	if err != nil {
		return err
	}
	s := session.New(layout.CellRule)
	s.Load(sheets)
	fmt.Fprintf(out, "%s: %d sheet(s)\n", filepath.Base(path), len(sheets))
	for i := range sheets {
		s.SwitchSheet(i)
		fmt.Fprintf(out, "  %d  %s\n", i, s.SheetInfo())
	}
	return nil
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <input> <output>",
		Short: "Convert a workbook to .xlsx",
		Long: `export reads an .xlsx or .xls workbook and writes its cell values to a new
.xlsx file, the same way the export key does inside the editor.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportWorkbook(cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

func exportWorkbook(out io.Writer, input, output string) error {
	if _, err := os.Stat(input); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("file not found: %s", input)
	}
	sheets, err := codec.ReadFile(input)
	if err != nil {
		return err
	}
	if err := codec.WriteFile(output, sheets); err != nil {
		return err
	}
	fmt.Fprintf(out, "Exported %d sheet(s) to %s\n", len(sheets), output)
	return nil
}
