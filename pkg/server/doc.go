// Package server runs the status endpoint of watch mode.
//
// The server exposes Prometheus metrics and the health endpoints of package
// health on one listener:
//
//	srv := server.New(server.Config{Address: ":9090"}, collector.Handler(), checker, logger)
//	go srv.Start(ctx) // returns after ctx is cancelled and the server drained
//
// Handlers are wrapped with panic recovery and request logging.
package server
