package cli

import (
	"context"

	"github.com/gorilla/websocket"

	"github.com/vexlabs/vexcheck/pkg/probe"
)

// APIClient talks to the HTTP API of a running `vexcheck serve`
// instance.
type APIClient struct {
	apiAddress string
}

func NewAPIClient(apiAddress string) *APIClient {
	return &APIClient{
		apiAddress: apiAddress,
	}
}

// Status fetches the current probe status document.
func (api *APIClient) Status() *TypedAPIResponse[probe.StatusResponse] {
	client, u, err := api.buildHTTPClientAndURL()
	if err != nil {
		return &TypedAPIResponse[probe.StatusResponse]{Error: err}
	}

	u.Path = "/status"
	return NewTypedAPIResponse(probe.StatusResponse{})(client.Get(u.String()))
}

// StatusRaw fetches the probe status document without decoding it;
// used for plain JSON output.
func (api *APIClient) StatusRaw() APIResponse {
	client, u, err := api.buildHTTPClientAndURL()
	if err != nil {
		return &CommonAPIResponse{Error: err}
	}

	u.Path = "/status"
	return NewAPIResponse(client.Get(u.String()))
}

// Watch subscribes to the status stream and prints every pushed
// document until the connection is closed.
func (api *APIClient) Watch() APIResponse {
	dialer, u, err := api.buildWebsocketURL()
	if err != nil {
		return &CommonAPIResponse{Error: err}
	}

	u.Path = "/watch"
	handler := func(ctx context.Context, conn *websocket.Conn, msgChan chan []byte, errChan chan error) {
		for {
			select {
			default:
				_, msg, err := conn.ReadMessage()
				if err != nil {
					errChan <- err
					return
				}
				msgChan <- msg
			case <-ctx.Done():
				return
			}
		}
	}
	return NewStreamingAPIResponse(u, dialer, handler)
}
