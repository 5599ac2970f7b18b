package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/taskrevolution/ttr/internal/build"
	"github.com/taskrevolution/ttr/internal/context"
	"github.com/taskrevolution/ttr/internal/lock"
	"github.com/taskrevolution/ttr/internal/repo"
)

var (
	serveOutDir string
	servePort   int
	serveBuild  bool
)

// serveCmd is the thin local-preview companion to `build`: it renders the
// static site (unless --build=false is given) and serves the output directory
// over plain net/http.FileServer. No live reload, no websocket push, no
// auth — a collaborator wanting those sits in front of this with its own
// reverse proxy.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the rendered static site over HTTP for local preview",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := resolveContext(context.Overrides{})
		if err != nil {
			return err
		}
		return withLock(ctx, lock.Shared, "serve", func(reg *repo.Registry) error {
			if serveBuild {
				report, err := build.Build(reg, build.Options{OutDir: serveOutDir})
				if err != nil {
					return err
				}
				if !quiet {
					fmt.Printf("Wrote %d pages to %s\n", report.PagesWritten, report.OutDir)
				}
			}

			addr := fmt.Sprintf(":%d", servePort)
			if !quiet {
				fmt.Printf("Serving %s on http://localhost%s\n", serveOutDir, addr)
			}
			return http.ListenAndServe(addr, http.FileServer(http.Dir(serveOutDir)))
		})
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveOutDir, "out", "site", "site directory to serve (and, unless --build=false, render into first)")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "port to listen on")
	serveCmd.Flags().BoolVar(&serveBuild, "build", true, "render the site before serving")
	rootCmd.AddCommand(serveCmd)
}
