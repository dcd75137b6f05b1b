package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/receipt/internal/app"
	"github.com/five82/receipt/internal/printer"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override receipt config path (optional)")
	prefsPath := flag.String("prefs", "", "override preferences path (optional)")
	pollSeconds := flag.Int("poll", 0, "health check interval in seconds (optional, defaults to 2s)")
	debug := flag.Bool("debug", false, "log at debug level")
	text := flag.String("text", "", "print this text and exit instead of starting the UI")
	photo := flag.String("photo", "", "print this image file as a photo and exit")
	title := flag.String("title", "", "title for -photo")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		Debug:      *debug,
	}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = poll
	}

	var err error
	switch {
	case *text != "":
		err = app.PrintOnce(ctx, opts, printer.Text{Text: *text, Feed: true})
	case *photo != "":
		var doc printer.Photo
		if doc, err = app.PhotoFromFile(*photo, *title); err == nil {
			err = app.PrintOnce(ctx, opts, doc)
		}
	default:
		err = app.Run(ctx, opts)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "receipt: %v\n", err)
		return 1
	}
	return 0
}
