package main

import (
	"context"

	"github.com/spf13/cobra"
	"mercator-hq/callisto/pkg/cli"
	"mercator-hq/callisto/pkg/diagnostics"
	"mercator-hq/callisto/pkg/runner"
	"mercator-hq/callisto/pkg/telemetry/metrics"
)

var tokensFlags struct {
	format string
}

var tokensCmd = &cobra.Command{
	Use:   "tokens FILE",
	Short: "Print the tokens of a program",
	Long: `Tokenize a program and print its tokens.

Text output groups tokens by source line; JSON output is an array of
{"kind", "text", "pos"} objects. The tokens are printed even when the
program does not parse.

Examples:
  callisto tokens hello.cal
  callisto tokens hello.cal --format json`,
	Args: cobra.ExactArgs(1),
	RunE: printTokens,
}

var astCmd = &cobra.Command{
	Use:   "ast FILE",
	Short: "Print the syntax tree of a program",
	Long: `Parse a program and print its syntax tree, one node per line, indented by
depth and prefixed with the source line number.

Example:
  callisto ast hello.cal`,
	Args: cobra.ExactArgs(1),
	RunE: printAST,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(astCmd)

	tokensCmd.Flags().StringVarP(&tokensFlags.format, "format", "f", "text", "output format: text, json")
}

// checkFile tokenizes and parses path, returning how far it got.
func checkFile(ctx context.Context, path string) (*runner.Result, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	cfg.Diagnostics.Enabled = false
	cfg.Telemetry.Metrics.Textfile = ""

	ctx, s, err := newSetup(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer s.close()

	r, err := runner.New(runner.Options{Config: cfg, Logger: s.logger, Tracer: s.tracer})
	if err != nil {
		return nil, err
	}
	return r.Check(ctx, path)
}

func printTokens(cmd *cobra.Command, args []string) error {
	format, err := diagnostics.ParseFormat(tokensFlags.format)
	if err != nil {
		return cli.NewConfigError("format", err.Error())
	}

	res, err := checkFile(cmd.Context(), args[0])
	if err != nil && (res == nil || res.Stage == metrics.StageLoad || res.Stage == metrics.StageTokenize) {
		return err
	}

	return diagnostics.WriteTokens(cmd.OutOrStdout(), res.Tokens, format)
}

func printAST(cmd *cobra.Command, args []string) error {
	res, err := checkFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return diagnostics.PrintAST(cmd.OutOrStdout(), res.Program)
}
