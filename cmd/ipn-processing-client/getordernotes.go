package main

import (
	"github.com/gofrs/uuid"
	"github.com/spf13/cobra"

	"github.com/caffeinepress/ipn-processing/api/client"
)

func init() {
	var cmdGetOrderNotes = &cobra.Command{
		Use:   "get_order_notes <order-id>",
		Short: "Get audit notes attached to an order",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			orderID, err := uuid.FromString(args[0])
			if err != nil {
				showResponse(nil, err)
			}
			showResponse(client.NewClient(apiURL).GetOrderNotes(orderID))
		},
	}

	cli.AddCommand(cmdGetOrderNotes)
}
