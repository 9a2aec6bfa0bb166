package proxy

import (
	"golang.org/x/net/proxy"
)

// NewSocksDialer returns a dialer that tunnels through the SOCKS5 proxy at
// socksAddr. An empty address means a direct connection.
func NewSocksDialer(socksAddr string) (proxy.Dialer, error) {
	if socksAddr == "" {
		return proxy.Direct, nil
	}

	dialer, err := proxy.SOCKS5("tcp", socksAddr, nil, proxy.Direct)
	if err != nil {
		return nil, err
	}

	return dialer, nil
}
