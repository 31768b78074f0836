package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"colfmt.dev/pkg/colfmt/internal/domain/tokens"
)

// tokensCmd represents the tokens command.
var tokensCmd = newTokensCmd()

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens LINE [LINE]",
		Short: "Show how lines are tokenized",
		Long: `Print the tokens and the wildcard pattern of one line. With two lines,
also report whether their token shapes match, which is the test align uses
to put lines in the same block.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lexed := make([][]string, 0, len(args))

			for _, line := range args {
				toks, err := tokens.Tokenize(line)
				if err != nil {
					return fmt.Errorf("tokenize %q: %w", line, err)
				}

				lexed = append(lexed, toks)

				cmd.Printf("tokens:  %q\n", toks)
				cmd.Printf("pattern: %s\n", strings.Join(tokens.Pattern(toks), " "))
			}

			if len(lexed) == 2 {
				cmd.Printf("match:   %t\n", tokens.Match(lexed[0], lexed[1]))
			}

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}
