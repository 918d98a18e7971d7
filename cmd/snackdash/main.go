package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/snackpos/snackdash/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	apiURL := flag.String("api", "", "POS API base url (overrides config and SNACKDASH_API_URL)")
	pollSeconds := flag.Int("poll", 0, "refresh interval in seconds (optional, defaults to 15s)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, APIURL: *apiURL}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = poll
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "snackdash: %v\n", err)
		return 1
	}
	return 0
}
