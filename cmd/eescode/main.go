// Command eescode parses, splits and renders EES code snippets.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/eescode/eescode/pkg/analyzer"
	"github.com/eescode/eescode/pkg/ast"
	"github.com/eescode/eescode/pkg/lexer"
	"github.com/eescode/eescode/pkg/starlark"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var rootConfigPath string
var verbose bool

var rootCmd = cobra.Command{
	Use:           "eescode",
	Short:         "Inspect EES code: parse, split, tokenize and render",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// setup loads the configuration and installs the default logger.
func setup(cmd *cobra.Command) (config, *analyzer.Analyzer, error) {
	cfg, err := loadConfig(rootConfigPath, cmd.Flags().Changed("config"))
	if err != nil {
		return cfg, nil, fmt.Errorf("loading config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.level()}))
	slog.SetDefault(logger)
	return cfg, cfg.analyzer(logger), nil
}

// input joins args, or reads stdin when there are none.
func input(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

var parseCmd = cobra.Command{
	Use:   "parse [code...]",
	Short: "Parse an expression and print it as rich text",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, a, err := setup(cmd)
		if err != nil {
			return err
		}
		if f, _ := cmd.Flags().GetString("format"); f != "" {
			cfg.Format = f
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		code, err := input(cmd, args)
		if err != nil {
			return err
		}
		tree, _ := cmd.Flags().GetBool("tree")
		vars, _ := cmd.Flags().GetBool("vars")
		return runParse(cmd.OutOrStdout(), cfg, a, code, tree, vars)
	},
}

func runParse(w io.Writer, cfg config, a *analyzer.Analyzer, code string, tree, vars bool) error {
	line, err := a.ParseString(code)
	if err != nil {
		return err
	}
	if line == nil {
		return nil
	}
	styler, err := cfg.styler()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, ast.RichText(line, styler))
	if tree {
		fmt.Fprint(w, ast.Pretty(line))
	}
	if vars {
		for _, v := range ast.Variables(line) {
			fmt.Fprintln(w, describeVariable(v))
		}
	}
	return nil
}

func describeVariable(v *ast.Variable) string {
	switch {
	case v.IsFluid:
		return "$fluid"
	case v.IsBlockIndex:
		return v.Name + "[$block_index]"
	case ast.IsInput(v):
		return fmt.Sprintf("%s <- $input[%d]", v.Name, v.Index)
	}
	return fmt.Sprintf("%s[$%d]", v.Name, v.Index)
}

var splitCmd = cobra.Command{
	Use:   "split [file]",
	Short: "Split code into default, optional and repeat sections",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, a, err := setup(cmd)
		if err != nil {
			return err
		}
		var code string
		if len(args) == 1 {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			code = string(data)
		} else if code, err = input(cmd, nil); err != nil {
			return err
		}
		return runSplit(cmd.OutOrStdout(), a, code)
	},
}

func runSplit(w io.Writer, a *analyzer.Analyzer, code string) error {
	parts, err := a.GetCodeParts(code)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(parts); err != nil {
		return fmt.Errorf("encoding parts: %w", err)
	}
	return enc.Close()
}

var tokensCmd = cobra.Command{
	Use:   "tokens [code...]",
	Short: "Print the token stream of the main or splitting lexer",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, a, err := setup(cmd)
		if err != nil {
			return err
		}
		code, err := input(cmd, args)
		if err != nil {
			return err
		}
		splitting, _ := cmd.Flags().GetBool("splitting")
		tokens, err := a.Tokens(code, splitting)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), lexer.Dump(tokens))
		return nil
	},
}

var checkCmd = cobra.Command{
	Use:   "check file.yaml",
	Short: "Parse every entry of a batch file and report failures",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, a, err := setup(cmd)
		if err != nil {
			return err
		}
		cfg.Format = "html"
		styler, err := cfg.styler()
		if err != nil {
			return err
		}
		results, checkErr := runCheck(a, args[0], styler)

		if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" && results != nil {
			f, err := os.Create(reportPath)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := writeReport(f, args[0], results); err != nil {
				return err
			}
			slog.Info("wrote report", "path", reportPath)
		}
		return checkErr
	},
}

var scriptCmd = cobra.Command{
	Use:   "script file.star",
	Short: "Run a Starlark script with the eescode builtins",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, a, err := setup(cmd)
		if err != nil {
			return err
		}
		e := starlark.NewEvaluator(a, cmd.OutOrStdout())
		_, err = e.ExecFile(args[0], nil)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "eescode.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	parseCmd.Flags().Bool("tree", false, "Print the syntax tree")
	parseCmd.Flags().Bool("vars", false, "Print the variables in collection order")
	parseCmd.Flags().String("format", "", "Output format: html, ansi or plain (overrides config)")
	rootCmd.AddCommand(&parseCmd)

	rootCmd.AddCommand(&splitCmd)

	tokensCmd.Flags().Bool("splitting", false, "Use the splitting lexer")
	rootCmd.AddCommand(&tokensCmd)

	checkCmd.Flags().String("report", "", "Write an HTML report to this path")
	rootCmd.AddCommand(&checkCmd)
	rootCmd.AddCommand(&scriptCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}
