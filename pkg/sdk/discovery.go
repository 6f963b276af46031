package sdk

import (
	"os"

	"github.com/backoffice-kit/backoffice/pkg/engine"
)

// EnvAPIURL names the environment variable that selects remote mode.
const EnvAPIURL = "BACKOFFICE_API_URL"

var (
	_ Backend = (*Client)(nil)
	_ Backend = (*Embedded)(nil)
	_ Backend = (*engine.AuditedStore)(nil)

	_ engine.OwnerSource = (*Client)(nil)
	_ engine.OwnerSink   = (*Client)(nil)
)

// New initializes the backend based on the environment.
// It returns the interface, so the caller doesn't care if it's local or remote.
func New(opts ...ClientOption) Backend {
	// 1. A remote API server defined in the environment wins
	if remote := os.Getenv(EnvAPIURL); remote != "" {
		return NewClient(remote, opts...)
	}

	// 2. Fallback to embedded mode with the demo data
	return NewEmbedded(engine.NewSeededStore(engine.DefaultSeed()))
}
