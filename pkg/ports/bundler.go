package ports

import "context"

// Bundler abstracts the asset bundler that compiles the user's scene code
// into the loadable page consumed via RunConfig.SceneEntryPath. The core
// only invokes it during the Bundling lifecycle state and otherwise
// treats the entry path as already built.
type Bundler interface {
	// Build produces (or confirms) the page at entryPath is ready to be
	// navigated to, returning the final file path to use.
	Build(ctx context.Context, entryPath string) (string, error)

	// Stop releases any watcher/process the bundler holds open.
	Stop() error
}
