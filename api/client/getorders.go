package client

import (
	"encoding/json"

	"github.com/caffeinepress/ipn-processing/api"
	"github.com/caffeinepress/ipn-processing/ipn/types"
)

func (cli *Client) GetOrders(filter *api.GetOrdersFilter) ([]*types.Order, error) {
	var responseData []*types.Order

	err := cli.sendHTTPAPIRequest(api.GetOrdersURL, filter, func(response []byte) error {
		return json.Unmarshal(response, &responseData)
	})
	return responseData, err
}
