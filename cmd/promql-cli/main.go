// Command promql-cli parses, type-checks and formats PromQL
// expressions.
package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"github.com/go-faster/promql"
)

// readQuery takes the query from arguments or stdin.
func readQuery(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", errors.Wrap(err, "read stdin")
	}
	return strings.TrimSpace(string(data)), nil
}

func fmtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fmt [query]",
		Short: "Print query in canonical form",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := readQuery(cmd, args)
			if err != nil {
				return err
			}
			expr, err := promql.Parse(q)
			if err != nil {
				return renderError(cmd.ErrOrStderr(), q, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), promql.Print(expr))
			return nil
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [query]",
		Short: "Parse and type-check query, print its value type",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := readQuery(cmd, args)
			if err != nil {
				return err
			}
			expr, err := promql.Parse(q)
			if err != nil {
				return renderError(cmd.ErrOrStderr(), q, err)
			}
			vt, err := promql.TypeCheck(expr)
			if err != nil {
				return renderError(cmd.ErrOrStderr(), q, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), vt)
			return nil
		},
	}
}

func dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump [query]",
		Short: "Print query AST as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := readQuery(cmd, args)
			if err != nil {
				return err
			}
			expr, err := promql.Parse(q)
			if err != nil {
				return renderError(cmd.ErrOrStderr(), q, err)
			}
			data, err := encodeExpr(expr)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print binary version",
		Run: func(cmd *cobra.Command, _ []string) {
			version := "unknown"
			if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
				version = bi.Main.Version
			}
			fmt.Fprintf(cmd.OutOrStdout(), "promql-cli %s\n", version)
		},
	}
}

func main() {
	root := &cobra.Command{
		Use:           "promql-cli",
		Short:         "PromQL parsing toolbox",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		fmtCmd(),
		checkCmd(),
		dumpCmd(),
		versionCmd(),
	)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
