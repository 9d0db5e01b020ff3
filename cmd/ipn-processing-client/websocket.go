package main

import (
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/caffeinepress/ipn-processing/api/client"
)

func init() {
	var startSeq int

	var cmdWebsocket = &cobra.Command{
		Use:   "websocket",
		Short: "Subscribe to events via websocket",
		Run: func(cmd *cobra.Command, args []string) {
			interrupt := make(chan os.Signal, 1)
			signal.Notify(interrupt, os.Interrupt)

			wsInterrupt, wsDone, err := client.NewWebsocketClient(
				apiURL, startSeq, func(message []byte) {
					log.Printf("recv: %s", message)
				},
			)
			if err != nil {
				log.Fatal(err)
			}

			select {
			case <-wsDone:
			case <-interrupt:
				wsInterrupt <- struct{}{}
				<-wsDone
			}
		},
	}

	cmdWebsocket.Flags().IntVarP(&startSeq, "seq", "s", 0, "sequence number to send events from")

	cli.AddCommand(cmdWebsocket)
}
