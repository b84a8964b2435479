// Package main provides the CLI entry point for sheetread-go.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetread-go/pkg/sheetread"
	"github.com/ukaji3/sheetread-go/pkg/sheetread/models"
	"github.com/ukaji3/sheetread-go/pkg/sheetread/output"
)

var (
	outputPath string
	pretty     bool
	format     string
	password   string
	formatted  bool
	padRows    bool
	anchorA1   bool
	sheetsOnly bool
	sheetsDir  string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sheetread [input]",
		Short: "Convert spreadsheet files into per-sheet rows",
		Long: `sheetread-go decodes xlsx and xls workbooks and outputs every sheet
as an array of rows in JSON.`,
		Args:          cobra.ExactArgs(1),
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().StringVar(&format, "format", "auto", "Input format: auto, xlsx, xls")
	rootCmd.Flags().StringVar(&password, "password", "", "Password for encrypted workbooks")
	rootCmd.Flags().BoolVar(&formatted, "formatted", false, "Emit display strings instead of typed values")
	rootCmd.Flags().BoolVar(&padRows, "pad", false, "Pad rows to the width of each sheet's used range")
	rootCmd.Flags().BoolVar(&anchorA1, "anchor-a1", false, "Count rows and columns from A1 instead of the used range")
	rootCmd.Flags().BoolVar(&sheetsOnly, "sheets-only", false, "Emit a bare array of sheets without workbook metadata")
	rootCmd.Flags().StringVar(&sheetsDir, "sheets-dir", "", "Directory for per-sheet output files")

	rootCmd.AddCommand(newServeCmd())
	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	inputFormat, err := sheetread.ParseFormat(format)
	if err != nil {
		return err
	}

	opts := sheetread.DefaultOptions()
	opts.Format = inputFormat
	opts.Password = password
	opts.Formatted = formatted
	opts.PadRows = padRows
	opts.AnchorA1 = anchorA1

	wb, err := sheetread.ReadFile(inputPath, opts)
	if err != nil {
		return errors.Wrap(err, "read failed")
	}

	var jsonData []byte
	if sheetsOnly {
		jsonData, err = output.SheetsToJSON(wb.Sheets, pretty)
	} else {
		jsonData, err = output.ToJSON(wb, pretty)
	}
	if err != nil {
		return errors.Wrap(err, "serialization failed")
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return errors.Wrap(err, "failed to write output")
		}
	} else if sheetsDir == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	}

	if sheetsDir != "" {
		if err := writeSheetFiles(wb, sheetsDir); err != nil {
			return errors.Wrap(err, "failed to write sheet files")
		}
	}

	return nil
}

func writeSheetFiles(wb *models.WorkbookData, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for i := range wb.Sheets {
		sheet := &wb.Sheets[i]
		jsonData, err := output.SheetToJSON(sheet, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, sheetFileName(sheet.Name, i))
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}

	return nil
}

// sheetFileName maps a sheet name to a file name inside the sheets
// directory. Separators are replaced so the file cannot land outside it, and
// names made only of dots fall back to the sheet position.
func sheetFileName(name string, index int) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}
		return r
	}, strings.TrimSpace(name))

	if strings.Trim(clean, ".") == "" {
		clean = fmt.Sprintf("sheet%d", index+1)
	}
	return clean + ".json"
}
