package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"mannequin/internal/application/usecases"
	"mannequin/internal/config"
	"mannequin/internal/domain/entities"
	"mannequin/internal/i18n"
	"mannequin/internal/infra"
)

type tryOnOptions struct {
	ModelPath   string
	GarmentPath string
	OutPath     string
	Lang        string
}

var tryOnOpts tryOnOptions

var tryOnCmd = &cobra.Command{
	Use:   "tryon",
	Short: "Dress the person in one photo with the garment from another",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTryOn(cmd.Context(), tryOnOpts)
	},
}

func init() {
	tryOnCmd.Flags().StringVarP(&tryOnOpts.ModelPath, "model", "m", "", "Path to the photo of the person")
	tryOnCmd.Flags().StringVarP(&tryOnOpts.GarmentPath, "garment", "g", "", "Path to the photo of the garment")
	tryOnCmd.Flags().StringVarP(&tryOnOpts.OutPath, "out", "o", "virtual-try-on.png", "Where to write the generated image")
	tryOnCmd.Flags().StringVar(&tryOnOpts.Lang, "lang", "", "Language for status messages (en, fa)")

	_ = tryOnCmd.MarkFlagRequired("model")
	_ = tryOnCmd.MarkFlagRequired("garment")
	rootCmd.AddCommand(tryOnCmd)
}

func runTryOn(ctx context.Context, opts tryOnOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := infra.NewLogger(cfg.AppEnv).Level(zerolog.WarnLevel)
	l := i18n.New(i18n.Match(cfg.DefaultLocale, opts.Lang, os.Getenv("LANG")))

	synthesis, err := newSynthesisService(ctx, cfg, &logger)
	if err != nil {
		return fmt.Errorf("failed to create synthesis service: %w", err)
	}
	defer synthesis.Close()

	tryOn, err := newTryOnUseCase(cfg, synthesis, &logger)
	if err != nil {
		return err
	}
	ctrl, err := controllerFactory(tryOn, cfg, &logger)()
	if err != nil {
		return err
	}
	defer ctrl.Close()

	if err := selectFile(ctrl.SelectModelPhoto, opts.ModelPath); err != nil {
		return fmt.Errorf("%s: %w", l.Failure(ctrl.State().Failure()), err)
	}
	if err := selectFile(ctrl.SelectGarmentPhoto, opts.GarmentPath); err != nil {
		return fmt.Errorf("%s: %w", l.Failure(ctrl.State().Failure()), err)
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(l.StatusMessages()[0]),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	stopSpinner := spin(bar, ctrl, l)

	state, err := ctrl.Submit(ctx)
	stopSpinner()
	_ = bar.Finish()
	if err != nil {
		return fmt.Errorf("%s: %w", l.Failure(state.Failure()), err)
	}

	return writeResult(opts.OutPath, state, l)
}

func selectFile(sel func(r io.Reader, declared string) (entities.SessionState, error), path string) error {
	f, err := os.Open(path)
	if err != nil {
		// Routed through the controller so the slot's read failure is recorded.
		_, err = sel(failedOpen{err}, "")
		return err
	}
	defer f.Close()
	_, err = sel(f, "")
	return err
}

type failedOpen struct{ err error }

func (f failedOpen) Read([]byte) (int, error) { return 0, f.err }

// spin mirrors the controller's status message on the spinner until stopped.
func spin(bar *progressbar.ProgressBar, ctrl *usecases.Controller, l *i18n.Localizer) func() {
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if key, ok := ctrl.Progress(); ok {
					bar.Describe(l.T(i18n.Key(key)))
				}
				_ = bar.Add(1)
			}
		}
	}()
	return func() {
		close(done)
		<-finished
	}
}

func writeResult(path string, state entities.SessionState, l *i18n.Localizer) error {
	result := state.Result()
	if result == nil || !result.HasImage() {
		return fmt.Errorf("%s", l.T(i18n.ErrNoImage))
	}
	if err := os.WriteFile(path, result.Image().Data(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(os.Stdout, "%s %s\n", l.T(i18n.ResultTitle), path)
	return nil
}
