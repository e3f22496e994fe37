package usecases

import (
	"context"
	"errors"
	"io"
	"sync"

	"mannequin/internal/application/progress"
	"mannequin/internal/domain"
	"mannequin/internal/domain/entities"
	"mannequin/internal/domain/valueobjects"
	"mannequin/internal/infra"
)

type photoSlot int

const (
	slotModel photoSlot = iota
	slotGarment
)

func (s photoSlot) String() string {
	if s == slotModel {
		return "model"
	}
	return "garment"
}

// Controller owns the state of one browser session. All mutations go through
// its four actions; the synthesis call itself runs outside the lock.
type Controller struct {
	tryOn     *TryOnUseCase
	indicator *progress.Indicator
	logger    *infra.Logger

	mu         sync.Mutex
	state      entities.SessionState
	generation uint64
	cancel     context.CancelFunc
}

func NewController(tryOn *TryOnUseCase, indicator *progress.Indicator, logger *infra.Logger) *Controller {
	if logger == nil {
		logger = infra.NopLogger()
	}
	return &Controller{
		tryOn:     tryOn,
		indicator: indicator,
		logger:    logger,
	}
}

func (c *Controller) SelectModelPhoto(r io.Reader, declared string) (entities.SessionState, error) {
	return c.selectPhoto(slotModel, r, declared)
}

func (c *Controller) SelectGarmentPhoto(r io.Reader, declared string) (entities.SessionState, error) {
	return c.selectPhoto(slotGarment, r, declared)
}

func (c *Controller) selectPhoto(slot photoSlot, r io.Reader, declared string) (entities.SessionState, error) {
	img, err := valueobjects.EncodeImage(r, declared)
	if err == nil && !img.MediaType().IsAccepted() {
		err = domain.ErrUnsupportedMediaType
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.logger.Warn().Err(err).Str("slot", slot.String()).Msg("photo selection rejected")
		kind := entities.FailureUnsupportedType
		if errors.Is(err, domain.ErrFileRead) {
			kind = entities.FailureModelRead
			if slot == slotGarment {
				kind = entities.FailureGarmentRead
			}
		}
		// A request in flight keeps its Loading phase; the caller still gets the error.
		if !c.state.IsLoading() {
			c.state = c.state.WithFailure(kind)
		}
		return c.state, err
	}

	if slot == slotModel {
		c.state = c.state.WithModelImage(img)
	} else {
		c.state = c.state.WithGarmentImage(img)
	}
	c.logger.Debug().
		Str("slot", slot.String()).
		Str("media_type", string(img.MediaType())).
		Int("bytes", img.Size()).
		Msg("photo selected")
	return c.state, nil
}

// Submit runs one try-on with the currently selected photos and blocks until
// it finishes. It is rejected while another submit is in flight and when a
// photo is missing; neither case reaches the network.
func (c *Controller) Submit(ctx context.Context) (entities.SessionState, error) {
	c.mu.Lock()
	if c.state.IsLoading() {
		state := c.state
		c.mu.Unlock()
		return state, domain.ErrSubmitInFlight
	}
	if !c.state.HasBothImages() {
		c.state = c.state.WithFailure(entities.FailureMissingImages)
		state := c.state
		c.mu.Unlock()
		return state, domain.ErrMissingImages
	}

	c.generation++
	gen := c.generation
	callCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state = c.state.Loading()
	input := TryOnInput{
		ModelImage:   c.state.ModelImage(),
		GarmentImage: c.state.GarmentImage(),
	}
	c.startIndicator()
	c.mu.Unlock()

	output, err := c.tryOn.Execute(callCtx, input)
	cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.Info().Uint64("generation", gen).Msg("try-on finished after reset, result dropped")
		return c.state, domain.ErrStaleResult
	}
	c.cancel = nil
	c.stopIndicator()

	if err != nil {
		c.state = c.state.WithFailure(failureKind(err))
		return c.state, err
	}

	c.state = c.state.WithResult(output.Result)
	c.logger.Info().Str("request_id", string(output.RequestID)).Msg("try-on completed")
	return c.state, nil
}

// Reset returns the session to Idle from any phase. An in-flight request is
// cancelled and its eventual completion is ignored.
func (c *Controller) Reset() entities.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.stopIndicator()
	c.state = entities.SessionState{}
	return c.state
}

func (c *Controller) State() entities.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Progress reports the current status message while a request is loading.
func (c *Controller) Progress() (string, bool) {
	c.mu.Lock()
	loading := c.state.IsLoading()
	c.mu.Unlock()

	if !loading || c.indicator == nil {
		return "", false
	}
	return c.indicator.Current(), true
}

// Close releases the session. It behaves like Reset.
func (c *Controller) Close() error {
	c.Reset()
	return nil
}

func (c *Controller) startIndicator() {
	if c.indicator != nil {
		c.indicator.Start()
	}
}

func (c *Controller) stopIndicator() {
	if c.indicator != nil {
		c.indicator.Stop()
	}
}

func failureKind(err error) entities.FailureKind {
	switch {
	case errors.Is(err, domain.ErrNoImageProduced):
		return entities.FailureNoImage
	case errors.Is(err, domain.ErrProcessingFailed):
		return entities.FailureProcessingFailed
	case errors.Is(err, domain.ErrMissingImages):
		return entities.FailureMissingImages
	default:
		return entities.FailureUnknown
	}
}
