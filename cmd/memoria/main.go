package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := &AppContext{}
	if err := execute(ctx, newRootCmd(app), app); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// execute runs root and releases the app's resources whatever the outcome.
func execute(ctx context.Context, root *cobra.Command, app *AppContext) error {
	defer app.Close()
	return root.ExecuteContext(ctx)
}
