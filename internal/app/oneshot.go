package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/five82/receipt/internal/printer"
)

// PrintOnce submits a single document without starting the UI. A failed
// submission is returned as an error carrying the controller's message.
func PrintOnce(ctx context.Context, opts Options, doc printer.Document) error {
	// Nobody watches a spinner here.
	noBusy := time.Duration(0)
	svc, err := setup(opts, &noBusy)
	if err != nil {
		return err
	}
	defer svc.closeLog()

	sub, err := doc.Submission()
	if err != nil {
		return fmt.Errorf("build %T: %w", doc, err)
	}

	svc.controller.Submit(ctx, sub)
	if st := svc.controller.State(); st.Failed {
		return errors.New(st.Error)
	}
	return nil
}

// PhotoFromFile reads path into a Photo document titled title.
func PhotoFromFile(path, title string) (printer.Photo, error) {
	data, err := os.ReadFile(strings.TrimSpace(path))
	if err != nil {
		return printer.Photo{}, fmt.Errorf("read photo: %w", err)
	}
	return printer.Photo{Filename: filepath.Base(path), Data: data, Title: title}, nil
}
