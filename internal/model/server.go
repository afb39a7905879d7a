package model

import (
	"context"
	"net"
)

// SecurityLayer opens the listener the HTTP server accepts on, with or without TLS.
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// Server is the externally reachable surface of the process.
type Server interface {
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}

// Worker is a background task owned by the process lifecycle.
type Worker interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
