package api

import (
	"fmt"
	"net/http"
)

// Ping checks that the service answers on its index route.
func (c *Client) Ping() error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return &TransportError{Reason: "could not build request", Err: err}
	}
	_, status, err := c.do(req)
	if err != nil {
		return err
	}
	if status >= 500 {
		return &TransportError{Reason: fmt.Sprintf("service unavailable (HTTP %d)", status)}
	}
	return nil
}
