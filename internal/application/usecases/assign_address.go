package usecases

import (
	"context"
	"fmt"
	"time"

	"staticip-agent/internal/domain/entities"
	"staticip-agent/internal/domain/errors"
	"staticip-agent/internal/domain/interfaces"
	"staticip-agent/internal/infrastructure/metrics"

	"github.com/sirupsen/logrus"
)

// State is the dispatcher's lifecycle state. Failed and Succeeded are
// terminal.
type State string

const (
	StateIdle        State = "idle"
	StateDetecting   State = "detecting"
	StateConfiguring State = "configuring"
	StateVerifying   State = "verifying"
	StateSucceeded   State = "succeeded"
	StateFailed      State = "failed"
)

// RendererProvider builds the ordered renderer chain for a detection result.
type RendererProvider interface {
	RendererChain(subsystems []entities.Subsystem) ([]interfaces.Renderer, error)
}

// AssignAddressUseCase is the dispatcher: it detects the available
// subsystems, walks them in priority order until one apply succeeds, then
// reports the observed interface state. The fallback walk guarantees the
// target interface is never left without an applied configuration while a
// lower-priority subsystem could still provide one.
type AssignAddressUseCase struct {
	detector  interfaces.SubsystemDetector
	renderers RendererProvider
	inspector interfaces.LinkInspector
	logger    *logrus.Logger
	state     State
}

// NewAssignAddressUseCase creates a new AssignAddressUseCase
func NewAssignAddressUseCase(
	detector interfaces.SubsystemDetector,
	renderers RendererProvider,
	inspector interfaces.LinkInspector,
	logger *logrus.Logger,
) *AssignAddressUseCase {
	return &AssignAddressUseCase{
		detector:  detector,
		renderers: renderers,
		inspector: inspector,
		logger:    logger,
		state:     StateIdle,
	}
}

// AssignAddressInput is the use case input.
type AssignAddressInput struct {
	Target *entities.NetworkTarget
}

// AssignAddressOutput is the use case output.
type AssignAddressOutput struct {
	// Subsystem that applied the configuration.
	Subsystem entities.Subsystem
	// Attempts is the number of subsystems tried, including the winner.
	Attempts int
	// FellBack is true when a lower-priority subsystem won.
	FellBack bool
	// NetworkState is the observational verification report. May be nil
	// when the report itself failed; verification never fails the run.
	NetworkState *entities.NetworkState
}

// State returns the dispatcher's current lifecycle state.
func (uc *AssignAddressUseCase) State() State {
	return uc.state
}

// Execute runs the dispatch: detect, configure with ordered fallback, verify.
func (uc *AssignAddressUseCase) Execute(ctx context.Context, input AssignAddressInput) (*AssignAddressOutput, error) {
	target := input.Target

	// Fail before anything is written when the interface is absent.
	if !uc.inspector.Exists(target.Interface()) {
		uc.transition(StateFailed)
		return nil, errors.NewNotFoundError(
			fmt.Sprintf("interface %s does not exist on this host", target.Interface()))
	}

	uc.transition(StateDetecting)
	detectStart := time.Now()
	subsystems, err := uc.detector.Detect(ctx)
	metrics.RecordDetection(time.Since(detectStart).Seconds())
	if err != nil {
		uc.transition(StateFailed)
		return nil, err
	}

	chain, err := uc.renderers.RendererChain(subsystems)
	if err != nil {
		uc.transition(StateFailed)
		return nil, err
	}

	uc.transition(StateConfiguring)
	var (
		applied  interfaces.Renderer
		attempts int
		lastErr  error
	)
	for _, renderer := range chain {
		attempts++
		subsystem := renderer.Subsystem()

		uc.logger.WithFields(logrus.Fields{
			"subsystem": subsystem.String(),
			"interface": target.Interface(),
			"address":   target.CIDR(),
			"attempt":   attempts,
		}).Info("Applying configuration")

		applyStart := time.Now()
		err := renderer.Apply(ctx, target)
		metrics.RecordApply(subsystem.String(), err == nil, time.Since(applyStart).Seconds())

		if err == nil {
			applied = renderer
			break
		}
		lastErr = err

		if ctx.Err() != nil {
			// No point walking the fallback list once the run itself
			// is cancelled.
			uc.transition(StateFailed)
			return nil, errors.NewSystemError("assignment cancelled", ctx.Err())
		}

		if attempts < len(chain) {
			metrics.RecordFallback()
			uc.logger.WithError(err).WithFields(logrus.Fields{
				"subsystem": subsystem.String(),
				"next":      chain[attempts].Subsystem().String(),
			}).Warn("Apply failed, falling back to next subsystem")
		}
	}

	if applied == nil {
		uc.transition(StateFailed)
		return nil, errors.NewNetworkError(
			fmt.Sprintf("all %d detected subsystems failed to apply the configuration", attempts),
			lastErr)
	}

	uc.transition(StateVerifying)
	output := &AssignAddressOutput{
		Subsystem: applied.Subsystem(),
		Attempts:  attempts,
		FellBack:  attempts > 1,
	}

	// Verification is observational: it reports, it never rolls back.
	state, err := uc.inspector.State(ctx, target.Interface())
	if err != nil {
		uc.logger.WithError(err).Warn("Post-apply state report failed")
	} else {
		output.NetworkState = state
		uc.logger.WithFields(logrus.Fields{
			"interface":   state.Interface,
			"up":          state.Up,
			"addresses":   state.Addresses,
			"routes":      state.Routes,
			"nameservers": state.Nameservers,
		}).Info("Post-apply interface state")
	}

	uc.transition(StateSucceeded)
	uc.logger.WithFields(logrus.Fields{
		"subsystem": applied.Subsystem().String(),
		"attempts":  attempts,
		"fallback":  output.FellBack,
	}).Info("Static address assignment completed")

	return output, nil
}

func (uc *AssignAddressUseCase) transition(next State) {
	uc.logger.WithFields(logrus.Fields{
		"from": string(uc.state),
		"to":   string(next),
	}).Debug("Dispatcher state transition")
	uc.state = next
}
