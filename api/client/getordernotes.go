package client

import (
	"encoding/json"

	"github.com/gofrs/uuid"

	"github.com/caffeinepress/ipn-processing/api"
)

func (cli *Client) GetOrderNotes(orderID uuid.UUID) ([]string, error) {
	var responseData []string

	err := cli.sendHTTPAPIRequest(api.GetOrderNotesURL, orderID, func(response []byte) error {
		return json.Unmarshal(response, &responseData)
	})
	return responseData, err
}
