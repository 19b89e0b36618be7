// Command shortmatch disassembles compiled shortest-match programs and runs
// them over text.
//
// Programs are read from JSON files; see programFile for the format.
//
//	shortmatch disasm prog.json
//	shortmatch match prog.json "some text" "more text"
//	shortmatch match --strategy backtracking prog.json < lines.txt
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/coregx/shortest"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "shortmatch",
		Short:        "Run compiled automata in shortest-match mode",
		SilenceUsage: true,
	}

	disasmCmd := &cobra.Command{
		Use:   "disasm [program.json]",
		Short: "Print a program's instructions and prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lp, err := loadProgramFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, lp.prog)
			fmt.Fprintf(out, "Prefix: %s (%d heap bytes)\n", lp.prefix, lp.prefix.HeapBytes())
			if err := lp.prog.Validate(); err != nil {
				fmt.Fprintf(out, "Validate: %v\n", err)
			} else {
				fmt.Fprintln(out, "Validate: ok")
			}
			return nil
		},
	}

	var strategyName string
	var noValidate bool
	var showStats bool

	matchCmd := &cobra.Command{
		Use:   "match [program.json] [text...]",
		Short: "Find the shortest match in each text, or in each line of stdin",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy, err := shortest.ParseStrategy(strategyName)
			if err != nil {
				return err
			}
			lp, err := loadProgramFile(args[0])
			if err != nil {
				return err
			}
			if !noValidate {
				if err := lp.prog.Validate(); err != nil {
					return err
				}
			}
			m := shortest.NewWithPrefix(lp.prog, lp.prefix, strategy)

			out := cmd.OutOrStdout()
			if len(args) > 1 {
				for _, text := range args[1:] {
					printMatch(out, m, []byte(text))
				}
			} else if err := matchLines(cmd.InOrStdin(), out, m); err != nil {
				return err
			}

			if showStats {
				s := m.Stats()
				fmt.Fprintf(out, "%s: %d searches, %d matches\n", m.Strategy(), s.Searches, s.Matches)
			}
			return nil
		},
	}
	matchCmd.Flags().StringVarP(&strategyName, "strategy", "s", "auto", "Engine to run (auto, backtracking, threaded)")
	matchCmd.Flags().BoolVar(&noValidate, "no-validate", false, "Skip program validation")
	matchCmd.Flags().BoolVar(&showStats, "stats", false, "Print search counters at the end")

	rootCmd.AddCommand(disasmCmd, matchCmd)
	return rootCmd
}

func matchLines(in io.Reader, out io.Writer, m *shortest.Matcher) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		printMatch(out, m, sc.Bytes())
	}
	return sc.Err()
}

func printMatch(out io.Writer, m *shortest.Matcher, text []byte) {
	if start, end, ok := m.ShortestMatch(text); ok {
		fmt.Fprintf(out, "%d %d %q\n", start, end, text[start:end])
		return
	}
	fmt.Fprintln(out, "no match")
}
