package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/santaworkshop/internal/api/response"
)

func newGamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "game",
		Aliases: []string{"games"},
		Short:   "Play the mini-games",
	}

	cmd.AddCommand(newCatcherCmd())
	cmd.AddCommand(newSnowballCmd())
	cmd.AddCommand(newTriviaCmd())
	cmd.AddCommand(newMemoryCmd())

	return cmd
}

// stateCmd builds a command that GETs or POSTs a path and prints a T
func stateCmd[T any](use, short, method, path string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result T
			if err := client.Do(method, path, nil, &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	}
}

// intCmd builds a command that POSTs {field: <int arg>} and prints a T
func intCmd[T any](use, short, path, field string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid number %q", args[0])
			}

			var result T
			if err := client.Post(path, map[string]int{field: n}, &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	}
}

func newCatcherCmd() *cobra.Command {
	const base = "/api/v1/games/catcher"
	cmd := stateCmd[response.Catcher]("catcher", "Show the gift catcher", "GET", base)
	cmd.AddCommand(stateCmd[response.Catcher]("start", "Start a 30 second run", "POST", base+"/start"))
	cmd.AddCommand(stateCmd[response.Catcher]("stop", "Abandon the run without points", "POST", base+"/stop"))
	cmd.AddCommand(stateCmd[response.Summary]("finish", "End the run and bank the score", "POST", base+"/finish"))
	cmd.AddCommand(intCmd[response.Interaction[response.Catcher]]("catch <item-id>", "Catch a falling item", base+"/catch", "item_id"))
	return cmd
}

func newSnowballCmd() *cobra.Command {
	const base = "/api/v1/games/snowball"
	cmd := stateCmd[response.Snowball]("snowball", "Show the snowball fight", "GET", base)
	cmd.AddCommand(stateCmd[response.Snowball]("start", "Start a 30 second run", "POST", base+"/start"))
	cmd.AddCommand(stateCmd[response.Snowball]("stop", "Abandon the run without points", "POST", base+"/stop"))
	cmd.AddCommand(stateCmd[response.Summary]("finish", "End the run and bank the score", "POST", base+"/finish"))
	cmd.AddCommand(intCmd[response.Interaction[response.Snowball]]("whack <slot>", "Throw at a slot", base+"/whack", "slot"))
	return cmd
}

func newTriviaCmd() *cobra.Command {
	const base = "/api/v1/games/trivia"
	cmd := stateCmd[response.Trivia]("trivia", "Show the trivia quiz", "GET", base)
	cmd.AddCommand(stateCmd[response.Trivia]("start", "Start a new quiz", "POST", base+"/start"))
	cmd.AddCommand(stateCmd[response.Trivia]("stop", "Abandon the quiz without points", "POST", base+"/stop"))
	cmd.AddCommand(intCmd[response.Trivia]("answer <option>", "Answer the current question", base+"/answer", "option"))
	return cmd
}

func newMemoryCmd() *cobra.Command {
	const base = "/api/v1/games/memory"
	cmd := stateCmd[response.Memory]("memory", "Show the memory board", "GET", base)
	cmd.AddCommand(stateCmd[response.Memory]("start", "Deal a new board", "POST", base+"/start"))
	cmd.AddCommand(stateCmd[response.Memory]("stop", "Abandon the board without points", "POST", base+"/stop"))
	cmd.AddCommand(intCmd[response.Memory]("reveal <card>", "Turn a card over", base+"/reveal", "card_id"))
	return cmd
}
