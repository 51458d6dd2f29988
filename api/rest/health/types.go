package health

import "context"

// Response represents the health check response
type Response struct {
	Status       string            `json:"status"`
	Service      string            `json:"service"`
	Version      string            `json:"version,omitempty"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

type PingResponse struct {
	Message string `json:"message"`
}

// anything the server needs to be reachable (postgres pool, redis client)
type Pinger interface {
	Ping(ctx context.Context) error
}

// adapts a plain function, e.g. a redis client's Ping(ctx).Err()
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}
