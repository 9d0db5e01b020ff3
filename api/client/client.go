package client

type Client struct {
	apiBaseURL string
}

func NewClient(apiBaseURL string) *Client {
	return &Client{
		apiBaseURL: apiBaseURL,
	}
}
