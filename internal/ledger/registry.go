package ledger

import (
	"fmt"

	"github.com/MKhiriev/invisible-wallet/internal/config"
	"github.com/MKhiriev/invisible-wallet/internal/logger"
	"github.com/MKhiriev/invisible-wallet/models"
)

// Registry resolves the [Client] of a network.
type Registry struct {
	clients map[models.Network]Client
}

// NewRegistry wraps a fixed set of clients.
func NewRegistry(clients map[models.Network]Client) *Registry {
	return &Registry{clients: clients}
}

// NewHorizonRegistry builds Horizon clients for both networks.
func NewHorizonRegistry(cfg config.Ledger, log *logger.Logger) (*Registry, error) {
	clients := make(map[models.Network]Client, 2)
	for _, network := range []models.Network{models.Testnet, models.Mainnet} {
		client, err := NewHorizonClient(network, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("horizon client for %s: %w", network, err)
		}
		clients[network] = client
	}

	return NewRegistry(clients), nil
}

// Client returns the client of network or [ErrUnsupportedNetwork].
func (r *Registry) Client(network models.Network) (Client, error) {
	client, ok := r.clients[network]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedNetwork, network)
	}
	return client, nil
}

// Networks returns the networks with a configured client.
func (r *Registry) Networks() []models.Network {
	networks := make([]models.Network, 0, len(r.clients))
	for _, n := range []models.Network{models.Testnet, models.Mainnet} {
		if _, ok := r.clients[n]; ok {
			networks = append(networks, n)
		}
	}
	return networks
}
