package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/santaworkshop/internal/api/response"
)

func newMazeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maze",
		Short: "Show the current maze",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Maze
			if err := client.Get("/api/v1/maze", &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "new",
		Short: "Generate a fresh maze",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Maze
			if err := client.Post("/api/v1/maze", nil, &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "move <up|down|left|right>",
		Short:     "Move one step",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "left", "right"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.MazeMove
			if err := client.Post("/api/v1/maze/move", map[string]string{"direction": args[0]}, &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	})

	return cmd
}
