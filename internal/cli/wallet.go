package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/santaworkshop/internal/api/response"
)

func newWalletCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Show the active profile's points and inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Wallet
			if err := client.Get("/api/v1/wallet", &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	}

	cmd.AddCommand(newPointsCmd("earn", "Add points to the wallet", "/api/v1/wallet/earn"))
	cmd.AddCommand(newPointsCmd("spend", "Remove points if the balance allows", "/api/v1/wallet/spend"))

	cmd.AddCommand(&cobra.Command{
		Use:   "grant <item>",
		Short: "Add an item to the inventory without paying",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Wallet
			if err := client.Post("/api/v1/wallet/inventory", map[string]string{"item_id": args[0]}, &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	})

	return cmd
}

func newPointsCmd(use, short, path string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <amount>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[0])
			}

			var result response.Wallet
			if err := client.Post(path, map[string]int{"amount": amount}, &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	}
}

func newShopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "List the reward shop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Shop
			if err := client.Get("/api/v1/shop", &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "buy <item>",
		Short: "Buy an item with points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Wallet
			if err := client.Post("/api/v1/shop/"+args[0]+"/buy", nil, &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	})

	return cmd
}
