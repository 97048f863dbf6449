package cli

import (
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/keyplate/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		cacheURL string
		noCache  bool
		jsonLogs bool
		timeout  = server.DefaultBuildTimeout
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the plate-building HTTP API",
		Long: `Serve exposes the build pipeline over HTTP:

  POST /v1/plates   build from a JSON body with "layout" and build options
  GET  /v1/formats  list output formats
  GET  /v1/version  build information
  GET  /healthz     liveness and cache backend

Artifacts are cached in the local cache directory unless --cache names a
shared backend such as redis://host:6379/0 or mongodb://host:27017/keyplate.`,
		Example: `  keyplate serve --addr :9000
  keyplate serve --cache redis://localhost:6379/0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if jsonLogs {
				useJSONLogs(c.Logger)
			}
			runner, err := c.newRunner(ctx, noCache, cacheURL)
			if err != nil {
				return err
			}
			defer runner.Close()

			s := server.New(runner, c.Logger,
				server.WithBackendName(backendName(noCache, cacheURL)),
				server.WithBuildTimeout(timeout))
			return s.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&cacheURL, "cache", "", "cache backend URL (redis://, mongodb://, file://)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&jsonLogs, "log-json", false, "log one JSON object per line")
	cmd.Flags().DurationVar(&timeout, "build-timeout", timeout, "maximum time per build request")

	return cmd
}

// backendName names the cache backend for /healthz without leaking
// credentials from the URL.
func backendName(noCache bool, target string) string {
	switch {
	case noCache, target == "none":
		return "none"
	case target == "":
		return "file"
	}
	u, err := url.Parse(target)
	if err != nil || u.Scheme == "" {
		return "file"
	}
	return strings.TrimSuffix(u.Scheme, "+srv")
}
