package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/tstromberg/collage/pkg/collage"
	"github.com/tstromberg/collage/pkg/preview"
	"github.com/tstromberg/collage/pkg/source"
)

var serveCmd = &cobra.Command{
	Use:   "serve [flags] IMAGE|DIR|GLOB...",
	Short: "Preview a collage in the browser",
	Long: `Build a collage and serve it over HTTP, optionally rebuilding it whenever
the inputs change.

Examples:
  collage serve --watch ~/Pictures/trip
  collage serve --addr 0.0.0.0:8080 --tile-size 200 'shots/*.png'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "localhost:12800", "host:port to bind to")
	serveCmd.Flags().Bool("watch", false, "rebuild when the inputs change")
}

// watchRoots returns the directories named by arguments, directly or as a glob's parent.
func watchRoots(args []string) []string {
	roots := []string{}
	for _, a := range args {
		if source.IsGlob(a) {
			roots = append(roots, filepath.Dir(a))
			continue
		}
		if st, err := os.Stat(a); err == nil && st.IsDir() {
			roots = append(roots, a)
		}
	}
	return roots
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	build := func(ctx context.Context) (*collage.Canvas, error) {
		paths, err := inputs(args)
		if err != nil {
			return nil, err
		}
		cfg, topts, err := settings()
		if err != nil {
			return nil, err
		}
		c, err := collage.Build(ctx, paths, collage.FileLoader{}, cfg)
		if err != nil {
			return nil, err
		}
		if title := conf.GetString("title"); title != "" {
			return c.WithTitle(title, topts)
		}
		return c, nil
	}

	s := preview.New(build)
	if err := s.Rebuild(ctx); err != nil {
		return fmt.Errorf("build: %w", err)
	}

	if conf.GetBool("watch") {
		paths, err := source.Expand(args)
		if err != nil {
			return err
		}
		dirs := preview.WatchDirs(paths, watchRoots(args))
		go func() {
			if err := preview.Watch(ctx, s, dirs); err != nil {
				klog.Errorf("watch: %v", err)
			}
		}()
	}

	addr := conf.GetString("addr")
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			klog.Errorf("shutdown: %v", err)
		}
	}()

	klog.Infof("Listening on http://%s/ ...", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}
