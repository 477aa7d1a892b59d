package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/santaworkshop/internal/api/request"
	"github.com/mcoot/santaworkshop/internal/api/response"
)

func newPlannerCmd() *cobra.Command {
	var (
		req    request.PlanRequest
		wishes []string
	)

	cmd := &cobra.Command{
		Use:   "planner",
		Short: "Suggest gifts for a child within a budget",
		Long: `Suggest gifts for a child within a budget.

Wishes are given as name=price, for example --wish "Sled=500". Prices and the
budget are free text; anything that is not a number counts as zero.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.WishList = make([]request.WishListItem, 0, len(wishes))
			for i, wish := range wishes {
				name, price, _ := strings.Cut(wish, "=")
				req.WishList = append(req.WishList, request.WishListItem{
					ID:    fmt.Sprintf("w%d", i+1),
					Name:  strings.TrimSpace(name),
					Price: price,
				})
			}

			var result response.Plan
			if err := client.Post("/api/v1/planner/suggestions", req, &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Child.Name, "name", "", "Child's name")
	cmd.Flags().IntVar(&req.Child.Age, "age", 0, "Child's age")
	cmd.Flags().StringVar(&req.Child.Gender, "gender", "", "boy, girl or other")
	cmd.Flags().StringSliceVar(&req.Child.Interests, "interest", nil, "Interest (repeatable)")
	cmd.Flags().StringArrayVar(&wishes, "wish", nil, "Wish as name=price (repeatable)")
	cmd.Flags().IntVar(&req.BehaviorScore, "behavior", 3, "Behavior score from 1 to 5")
	cmd.Flags().StringVar(&req.Budget, "budget", "", "Total budget")

	return cmd
}
