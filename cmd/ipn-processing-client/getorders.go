package main

import (
	"github.com/spf13/cobra"

	"github.com/caffeinepress/ipn-processing/api"
	"github.com/caffeinepress/ipn-processing/api/client"
	"github.com/caffeinepress/ipn-processing/ipn/types"
)

func init() {
	var statusFilter string
	var transactionIDFilter string

	var cmdGetOrders = &cobra.Command{
		Use:   "get_orders",
		Short: "Get list of orders, optionally filtered by status or transaction id",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if statusFilter != "" {
				_, err := types.OrderStatusFromString(statusFilter)
				if err != nil {
					return err
				}
			}
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			filter := api.GetOrdersFilter{
				Status:        statusFilter,
				TransactionID: transactionIDFilter,
			}
			showResponse(client.NewClient(apiURL).GetOrders(&filter))
		},
	}

	cmdGetOrders.Flags().StringVarP(&statusFilter, "status", "s", "", "order status filter")
	cmdGetOrders.Flags().StringVarP(&transactionIDFilter, "transaction-id", "t", "", "transaction id filter")

	cli.AddCommand(cmdGetOrders)
}
