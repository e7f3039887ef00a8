// collage arranges photos into a square contact-sheet grid.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"k8s.io/klog/v2"

	"github.com/tstromberg/collage/pkg/collage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		klog.Errorf("%v", err)
	}
	klog.Flush()
	os.Exit(collage.ExitCode(err))
}
