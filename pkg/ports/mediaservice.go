package ports

import "context"

// MediaService abstracts the local HTTP service that serves on-demand
// stream frames to the scene runtime and answers media metadata probes.
// It is an external collaborator: the core never implements the HTTP
// handlers, only starts/stops the process and forwards the shared secret
// and port it was given to the Scene Page's InitParams.
type MediaService interface {
	// Start launches the service and returns the local port it bound to.
	Start(ctx context.Context, secret string) (port int, err error)

	// Stop shuts the service down. Best-effort; errors are logged, not
	// propagated, as a Cleanup-kind failure.
	Stop() error
}
