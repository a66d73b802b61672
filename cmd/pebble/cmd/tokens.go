package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AGOODGITDUCK/PebbleCode/foundation/pebble"
	"github.com/AGOODGITDUCK/PebbleCode/foundation/pebble/ast"
	"github.com/AGOODGITDUCK/PebbleCode/foundation/pebble/parser"
)

var tokensSerialize bool

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Print the tokens of a Pebble program",
	Long: `Prints one token per line with its line and column.

With --serialize the tokens are written back as source text instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokens,
}

var astCmd = &cobra.Command{
	Use:   "ast <file>",
	Short: "Print the syntax tree of a Pebble program",
	Args:  cobra.ExactArgs(1),
	RunE:  runAST,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(astCmd)

	tokensCmd.Flags().BoolVar(&tokensSerialize, "serialize", false, "print the tokens as source text")
}

func runTokens(cmd *cobra.Command, args []string) error {
	src, err := pebble.ReadSource(args[0])
	if err != nil {
		return err
	}
	tokens, err := newEngine(cmd.OutOrStdout()).Tokenize(src, args[0])
	if err != nil {
		reportScriptError(cmd.ErrOrStderr(), err)
		return errReported
	}

	out := cmd.OutOrStdout()
	if tokensSerialize {
		fmt.Fprintln(out, parser.Serialize(tokens))
		return nil
	}
	for _, tok := range tokens {
		fmt.Fprintf(out, "%d:%d\t%s\n", tok.Line, tok.Column, tok)
	}
	return nil
}

func runAST(cmd *cobra.Command, args []string) error {
	src, err := pebble.ReadSource(args[0])
	if err != nil {
		return err
	}
	block, err := newEngine(cmd.OutOrStdout()).Parse(src, args[0])
	if err != nil {
		reportScriptError(cmd.ErrOrStderr(), err)
		return errReported
	}
	fmt.Fprint(cmd.OutOrStdout(), ast.Dump(block))
	return nil
}
