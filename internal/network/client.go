package network

import (
	"net/http"
	"time"
)

// ClientFactory creates HTTP clients for feed and resource fetches. Tests
// inject a prepared client through NewClientFactoryForTest so request handling
// can be stubbed without a live network.
type ClientFactory struct {
	testHTTPClient *http.Client // for testing only
}

func NewClientFactory() *ClientFactory {
	return &ClientFactory{}
}

// NewClientFactoryForTest creates a factory that always returns the given
// client. Only for use in tests.
func NewClientFactoryForTest(client *http.Client) *ClientFactory {
	return &ClientFactory{testHTTPClient: client}
}

// NewHTTPClient returns a client with the given timeout.
func (f *ClientFactory) NewHTTPClient(timeout time.Duration) *http.Client {
	if f.testHTTPClient != nil {
		return f.testHTTPClient
	}
	return &http.Client{Timeout: timeout}
}
