package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/ogonzalezm/tributo/internal/calculation"
	"github.com/ogonzalezm/tributo/internal/config"
	"github.com/ogonzalezm/tributo/internal/output"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "tributo",
	Short: "Cedular income tax calculator",
	Long:  "Computes a complete personal income-tax declaration: cedular depuration, dividend stacking, wealth tax, credits, advance payment and filing obligation",
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [input-file]",
	Short: "Calculate a full declaration from a taxpayer file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		taxpayer, err := parser.LoadFromFile(args[0])
		if err != nil {
			return err
		}
		if year, _ := cmd.Flags().GetInt("year"); year != 0 {
			taxpayer.TaxYear = year
		}

		engine := calculation.NewCalculationEngine()
		if debugFlag, _ := cmd.Flags().GetBool("debug"); debugFlag {
			engine.Debug = true
			engine.SetLogger(simpleCLILogger{})
		}

		result, err := engine.Calculate(taxpayer)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		formatter, err := output.ByName(format)
		if err != nil {
			return err
		}
		rendered, err := formatter.Format(result)
		if err != nil {
			return fmt.Errorf("formatting result: %w", err)
		}
		_, err = os.Stdout.Write(rendered)
		return err
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [input-file]",
	Short: "Check only the filing obligation for a taxpayer file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		taxpayer, err := parser.LoadFromFile(args[0])
		if err != nil {
			return err
		}

		result, err := calculation.NewCalculationEngine().Calculate(taxpayer)
		if err != nil {
			return err
		}

		if !result.Filing.Obligated {
			fmt.Println("Not obligated to file.")
			return nil
		}
		fmt.Println("Obligated to file:")
		for _, reason := range result.Filing.Reasons {
			fmt.Printf("  • %s\n", reason)
		}
		if result.FilingDeadline != "" {
			fmt.Printf("Filing deadline: %s\n", result.FilingDeadline)
		}
		return nil
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "tributo %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Version)
			}
		},
	}
}

func main() {
	calculateCmd.Flags().String("format", "console", "Output format: console, json, csv")
	calculateCmd.Flags().Int("year", 0, "Override the tax year from the input file")
	calculateCmd.Flags().Bool("debug", false, "Enable debug logging")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
