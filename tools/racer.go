package main

import (
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/caffeinepress/ipn-processing/api"
	"github.com/caffeinepress/ipn-processing/api/client"
	"github.com/caffeinepress/ipn-processing/ipn"
	"github.com/caffeinepress/ipn-processing/ipn/types"
)

var (
	apiURL    string
	secretKey string
	nProcs    uint
	nReceipts uint
)

var cli = &cobra.Command{
	Use:   "racer",
	Short: "Tool to find race conditions in ipn-processing duplicate handling",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if !strings.HasPrefix(apiURL, "http") {
			apiURL = "http://" + apiURL
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		for i := 0; i < int(nProcs); i++ {
			go race()
		}
		go checkInvariant()
		select {}
	},
}

func randomReceipt() string {
	return fmt.Sprintf("RACE%06d", rand.Intn(int(nReceipts)))
}

func signedForm(transaction, receipt string) url.Values {
	fields := map[string]string{
		types.FieldCustomerName:    "Race Tester",
		types.FieldCustomerEmail:   "racer@example.com",
		types.FieldTransactionType: transaction,
		types.FieldAmount:          "1999",
		types.FieldReceipt:         receipt,
	}
	fields[types.FieldVerification] = ipn.ComputeSignature(fields, secretKey)

	form := make(url.Values)
	for name, value := range fields {
		form.Set(name, value)
	}
	return form
}

func sendIPN(transaction, receipt string) {
	resp, err := http.PostForm(
		apiURL+"/?jvzooipn=ipn&eddid=1", signedForm(transaction, receipt),
	)
	if err != nil {
		log.Printf("Failed to send %s for %s: %v", transaction, receipt, err)
		return
	}
	resp.Body.Close()
}

func race() {
	for {
		receipt := randomReceipt()
		if rand.Intn(4) == 0 {
			sendIPN("RFND", receipt)
		} else {
			sendIPN("SALE", receipt)
		}
	}
}

// checkInvariant periodically verifies that no transaction id ever has more
// than one published order, which is exactly the race the duplicate handling
// must prevent.
func checkInvariant() {
	c := client.NewClient(apiURL)
	for {
		time.Sleep(time.Second)

		orders, err := c.GetOrders(&api.GetOrdersFilter{
			Status: types.PublishedOrder.String(),
		})
		if err != nil {
			log.Printf("Failed to fetch published orders: %v", err)
			continue
		}

		publishedPerReceipt := make(map[string]int)
		for _, order := range orders {
			publishedPerReceipt[order.TransactionID]++
		}
		for receipt, count := range publishedPerReceipt {
			if count > 1 {
				log.Printf(
					"RACE FOUND: %d published orders for receipt %s",
					count, receipt,
				)
			}
		}
	}
}

func main() {
	rand.Seed(time.Now().Unix())

	cli.PersistentFlags().StringVarP(&apiURL, "api-url", "u", "http://localhost:8000", "url of ipn-processing API")
	cli.PersistentFlags().StringVarP(&secretKey, "secret-key", "k", "", "JVZoo secret key the server is configured with")

	nCPU := runtime.NumCPU()

	cli.PersistentFlags().UintVarP(&nProcs, "num-procs", "n", uint(nCPU), "number of concurrent senders")
	cli.PersistentFlags().UintVarP(&nReceipts, "num-receipts", "r", 100, "size of the receipt id pool (smaller means more collisions)")

	if err := cli.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
