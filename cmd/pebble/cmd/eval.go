package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	mdwerror "github.com/AGOODGITDUCK/PebbleCode/foundation/core/error"
	"github.com/AGOODGITDUCK/PebbleCode/foundation/pebble/value"
)

var (
	evalVars     []string
	evalShowKind bool
)

var evalCmd = &cobra.Command{
	Use:   "eval [--var name=value]... <expression>",
	Short: "Evaluate an expression the way the console's print does",
	Long: `Substitutes variables into the expression text and evaluates it.
Text that does not evaluate is printed as it is.

Variable values are evaluated themselves, in order, so later variables
can use earlier ones.

Examples:
  pebble eval "2 ** 10"
  pebble eval --var x=5 --var y="x * 2" "y + 1"
  pebble eval --kind "7 / 2"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().StringArrayVar(&evalVars, "var", nil, "bind a variable, name=value (repeatable)")
	evalCmd.Flags().BoolVar(&evalShowKind, "kind", false, "print the value kind as well")
}

func runEval(cmd *cobra.Command, args []string) error {
	engine := newEngine(cmd.OutOrStdout())
	env := value.NewEnv()

	for _, binding := range evalVars {
		name, expr, ok := strings.Cut(binding, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return mdwerror.Newf("invalid variable binding: %s (want name=value)", binding).
				WithCode(mdwerror.CodeInvalidInput).
				WithOperation("cmd.eval")
		}
		env.Set(name, engine.EvaluateText(strings.TrimSpace(expr), env))
	}

	v := engine.EvaluateText(strings.Join(args, " "), env)
	if evalShowKind {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", v, v.Kind())
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), v)
	return nil
}
