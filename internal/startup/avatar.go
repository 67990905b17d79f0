package startup

import (
	"context"
	"fmt"

	"github.com/tinytelemetry/smileguide/internal/model"
	"go.uber.org/zap"
)

// AvatarPrompt is sent to the image generator when no assistant avatar is cached.
const AvatarPrompt = "A modern, friendly AI assistant avatar for a dental health app. " +
	"Stylized tooth logo subtly integrated with a sound wave or a gentle smile curve. " +
	"Use a clean, minimalist design with a soft color palette of teal (#14b8a6), " +
	"light blue (#38bdf8), and white. Smooth gradients. Flat 2D vector style. Centered in a circle."

// Outcome reports how the avatar bootstrap ended.
type Outcome int

const (
	OutcomeCached Outcome = iota
	OutcomeGenerated
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCached:
		return "cached"
	case OutcomeGenerated:
		return "generated"
	default:
		return "failed"
	}
}

// AvatarBootstrap makes sure the assistant avatar exists in the value store.
type AvatarBootstrap struct {
	store     model.ValueStore
	generator model.ImageGenerator
	log       *zap.Logger
}

// NewAvatarBootstrap wires the bootstrap to its collaborators. A nil logger
// is replaced with a no-op logger.
func NewAvatarBootstrap(store model.ValueStore, generator model.ImageGenerator, log *zap.Logger) *AvatarBootstrap {
	if log == nil {
		log = zap.NewNop()
	}
	return &AvatarBootstrap{store: store, generator: generator, log: log}
}

// Run reads the cached avatar and, when absent, generates and stores a new
// one. Failures are logged and reported as OutcomeFailed; they never
// propagate, so the caller can always mark initialization complete.
func (b *AvatarBootstrap) Run(ctx context.Context) Outcome {
	outcome, err := b.run(ctx)
	if err != nil {
		b.log.Error("startup: failed to initialize app data", zap.Error(err))
		return OutcomeFailed
	}
	b.log.Info("startup: assistant avatar ready", zap.Stringer("outcome", outcome))
	return outcome
}

func (b *AvatarBootstrap) run(ctx context.Context) (Outcome, error) {
	avatar, found, err := b.store.GetValue(ctx, model.KeyAssistantAvatar)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("reading avatar: %w", err)
	}
	if found && avatar != "" {
		return OutcomeCached, nil
	}

	b.log.Info("startup: no assistant avatar found, generating one")
	avatar, err = b.generator.Generate(ctx, AvatarPrompt)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("generating avatar: %w", err)
	}

	if err := b.store.SetValue(ctx, model.KeyAssistantAvatar, avatar); err != nil {
		return OutcomeFailed, fmt.Errorf("storing avatar: %w", err)
	}
	return OutcomeGenerated, nil
}
