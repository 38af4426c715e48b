package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chessmine/chessmine/internal/chessql"
	"github.com/chessmine/chessmine/internal/ui"
)

var explainCmd = &cobra.Command{
	Use:   "explain <chessql>",
	Short: "Show the SQL a ChessQL query compiles to",
	Long: `Compiles a ChessQL expression and prints the generated SQL and its
bound parameters without running it.

Examples:
  chessmine explain "white_elo > 2500 AND motif(fork)"
  chessmine explain "sequence(check, checkmate)" --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		compiled, err := chessql.Compile(args[0])
		if err != nil {
			return handleError(ErrQueryInvalid, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"query":  args[0],
				"sql":    compiled.SelectSQL,
				"params": compiled.Params,
			}, nil)
			return nil
		}

		fmt.Println(ui.Header("SQL"))
		fmt.Println(compiled.SelectSQL)
		fmt.Println()
		fmt.Println(ui.Header("Parameters"))
		if len(compiled.Params) == 0 {
			fmt.Println(ui.Styled(ui.Muted, "(none)"))
			return nil
		}
		for i, p := range compiled.Params {
			fmt.Printf("  %d: %v\n", i+1, p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(explainCmd)
}
