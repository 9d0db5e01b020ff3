package main

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var apiURL string

var cli = &cobra.Command{
	Use:   "ipn-processing-client",
	Short: "CLI client for ipn-processing (bridge accepting JVZoo payment notifications into a shop ledger)",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if !strings.HasPrefix(apiURL, "http") {
			apiURL = "http://" + apiURL
		}
	},
}

func main() {
	cli.PersistentFlags().StringVarP(&apiURL, "api-url", "u", "http://localhost:8000", "url of ipn-processing API")

	if err := cli.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
