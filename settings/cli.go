package settings

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

// ReadSettingsAndRun reads settings processing both command-line options and
// configuration file and then calls given func funcToRun. It should be used by
// entry point of whatever program uses settings, any code that uses settings
// should be called from funcToRun
func ReadSettingsAndRun(funcToRun func(s Settings)) {
	var s Settings
	var cfgFile string

	cli := &cobra.Command{
		Use:   "ipn-processing",
		Short: "Bridge accepting JVZoo payment notifications into a shop ledger",
	}

	cli.Run = func(cmd *cobra.Command, args []string) {
		funcToRun(s)
	}

	cobra.OnInitialize(func() {
		var err error
		s, err = NewSettings(cfgFile, cli)
		if err != nil {
			log.Fatalf("Can't read config %s", err)
		}
	})

	cli.Flags().StringVarP(&cfgFile, "config-file", "c", "", "config file (default is ./config.yml)")
	cli.Flags().StringP("order-callback-url", "t", "", "callback url for order events")
	cli.Flags().StringP("http-address", "a", "", "host for HTTP API to listen on")
	cli.Flags().StringP("storage-type", "s", "", "type of storage to use")

	if err := cli.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
