package biz

import (
	"context"

	"github.com/lk2023060901/ai-session-backend/internal/session/types"

	apperrors "github.com/lk2023060901/ai-session-backend/internal/pkg/errors"
	"go.uber.org/zap"
)

// Effect is one selection mutation the reconciler wants applied to the
// selection store.
type Effect interface {
	isEffect()
}

// SetCurrentAssistantEffect selects a hydrated assistant
type SetCurrentAssistantEffect struct {
	Assistant *types.Assistant
}

// SetCurrentTopicEffect selects a topic by id
type SetCurrentTopicEffect struct {
	TopicID string
}

func (SetCurrentAssistantEffect) isEffect() {}
func (SetCurrentTopicEffect) isEffect()     {}

// Reconciler converges the selection state to a valid (assistant, topic)
// pair: exactly one assistant selected, and a selected topic that belongs to
// it. It is idempotent: applying the returned effects and reconciling the
// resulting snapshot yields no further effects unless external entities
// changed. Effects for a branch are only returned once every prerequisite
// read and create for that branch succeeded; on error the caller applies
// nothing and the selection stays as last observed.
type Reconciler struct {
	settings   SettingRepo
	assistants AssistantRepo
	topics     TopicRepo
	loader     *EntityLoader
	prov       Provisioner
	guard      verifyGuard
	logger     *zap.Logger
}

// NewReconciler creates a new reconciler
func NewReconciler(
	settings SettingRepo,
	assistants AssistantRepo,
	topics TopicRepo,
	loader *EntityLoader,
	prov Provisioner,
	logger *zap.Logger,
) *Reconciler {
	return &Reconciler{
		settings:   settings,
		assistants: assistants,
		topics:     topics,
		loader:     loader,
		prov:       prov,
		logger:     logger,
	}
}

// Reconcile runs one convergence pass over a snapshot of the selection state
func (r *Reconciler) Reconcile(ctx context.Context, snap Snapshot) ([]Effect, error) {
	if snap.CurrentAssistant == nil {
		return r.selectInitialAssistant(ctx, snap)
	}
	return r.ensureTopicSelection(ctx, snap)
}

// selectInitialAssistant restores a selection when no assistant is selected:
// first from the persisted last-selected pointer, then by first-assistant
// selection.
func (r *Reconciler) selectInitialAssistant(ctx context.Context, snap Snapshot) ([]Effect, error) {
	persistedID, err := r.settings.Get(ctx, SettingKeyCurrentAssistant)
	if err != nil && !apperrors.Is(err, apperrors.ErrSettingNotFound) {
		return nil, err
	}

	if persistedID != "" {
		hydrated, err := r.loader.LoadAssistant(ctx, persistedID)
		if err != nil {
			if !apperrors.Is(err, apperrors.ErrAssistantNotFound) {
				return nil, err
			}
			// Dangling pointer, fall through to first-assistant selection.
			r.logger.Warn("persisted assistant no longer exists",
				zap.String("assistant_id", persistedID))
		} else {
			effects := []Effect{SetCurrentAssistantEffect{Assistant: hydrated}}
			if snap.CurrentTopicID == "" && len(hydrated.Topics) > 0 {
				effects = append(effects, SetCurrentTopicEffect{TopicID: hydrated.Topics[0].ID})
			}
			return effects, nil
		}
	}

	return r.selectFirstAssistant(ctx, snap)
}

// selectFirstAssistant picks the first assistant of the snapshot's collection
// order, provisioning defaults when the collection is empty or the chosen
// assistant has no topics. The chosen id is persisted as the last-selected
// pointer.
func (r *Reconciler) selectFirstAssistant(ctx context.Context, snap Snapshot) ([]Effect, error) {
	if len(snap.Assistants) == 0 {
		return r.bootstrapDefaults(ctx)
	}

	hydrated, err := r.loader.LoadAssistant(ctx, snap.Assistants[0].ID)
	if err != nil {
		return nil, err
	}

	if err := r.settings.Save(ctx, SettingKeyCurrentAssistant, hydrated.ID); err != nil {
		return nil, err
	}

	if len(hydrated.Topics) > 0 {
		return []Effect{
			SetCurrentAssistantEffect{Assistant: hydrated},
			SetCurrentTopicEffect{TopicID: hydrated.Topics[0].ID},
		}, nil
	}

	topic, err := r.prov.CreateDefaultTopic(ctx, hydrated.ID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrProvisioner, "create default topic")
	}
	if topic == nil {
		return nil, apperrors.NewProvisionerError("provisioner returned no topic")
	}

	hydrated.TopicIDs = append(hydrated.TopicIDs, topic.ID)
	hydrated.Topics = append(hydrated.Topics, topic)
	if err := r.assistants.Update(ctx, hydrated); err != nil {
		return nil, err
	}

	return []Effect{
		SetCurrentAssistantEffect{Assistant: hydrated},
		SetCurrentTopicEffect{TopicID: topic.ID},
	}, nil
}

// bootstrapDefaults provisions the whole default assistant set for an empty
// system and selects the first of them.
func (r *Reconciler) bootstrapDefaults(ctx context.Context) ([]Effect, error) {
	created, err := r.prov.InitializeDefaultAssistants(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrProvisioner, "initialize default assistants")
	}
	if len(created) == 0 {
		return nil, apperrors.NewProvisionerError("provisioner returned no assistants")
	}

	first := created[0]
	types.SortTopicsByActivity(first.Topics)

	if err := r.settings.Save(ctx, SettingKeyCurrentAssistant, first.ID); err != nil {
		return nil, err
	}

	effects := []Effect{SetCurrentAssistantEffect{Assistant: first}}
	if len(first.Topics) > 0 {
		effects = append(effects, SetCurrentTopicEffect{TopicID: first.Topics[0].ID})
	}
	return effects, nil
}

// ensureTopicSelection enforces that the selected topic belongs to the
// selected assistant.
func (r *Reconciler) ensureTopicSelection(ctx context.Context, snap Snapshot) ([]Effect, error) {
	assistant := snap.CurrentAssistant

	if len(assistant.Topics) == 0 && len(assistant.TopicIDs) == 0 {
		// An already-selected assistant with zero topics is left alone;
		// default topics are only provisioned during first-assistant
		// selection.
		return nil, nil
	}

	if snap.CurrentTopicID == "" {
		topic, err := r.firstTopic(ctx, assistant)
		if err != nil {
			return nil, err
		}
		if topic == nil {
			return nil, nil
		}
		return []Effect{SetCurrentTopicEffect{TopicID: topic.ID}}, nil
	}

	if assistant.OwnsTopic(snap.CurrentTopicID) {
		// Convergent steady state.
		return nil, nil
	}

	// The selected topic looks foreign. The hydrated cache can be stale, so
	// before switching re-check ownership against the durable record, at most
	// once per topic id.
	if !r.guard.shouldVerify(snap.CurrentTopicID) {
		return nil, nil
	}

	topic, err := r.topics.GetByID(ctx, snap.CurrentTopicID)
	if err != nil && !apperrors.Is(err, apperrors.ErrTopicNotFound) {
		return nil, err
	}
	if topic != nil && topic.AssistantID == assistant.ID {
		r.logger.Debug("stale hydration cache, keeping selected topic",
			zap.String("topic_id", topic.ID),
			zap.String("assistant_id", assistant.ID))
		return nil, nil
	}

	first, err := r.firstTopic(ctx, assistant)
	if err != nil {
		return nil, err
	}
	if first == nil {
		return nil, nil
	}

	r.logger.Info("switching away from foreign topic",
		zap.String("from_topic_id", snap.CurrentTopicID),
		zap.String("to_topic_id", first.ID),
		zap.String("assistant_id", assistant.ID))

	return []Effect{SetCurrentTopicEffect{TopicID: first.ID}}, nil
}

// firstTopic returns the assistant's most-recently-active topic, hydrating
// from durable storage when the cache is empty.
func (r *Reconciler) firstTopic(ctx context.Context, assistant *types.Assistant) (*types.Topic, error) {
	if len(assistant.Topics) > 0 {
		return types.MostRecentTopic(assistant.Topics), nil
	}

	topics, err := r.loader.LoadTopics(ctx, assistant.ID)
	if err != nil {
		return nil, err
	}
	if len(topics) == 0 {
		return nil, nil
	}
	return topics[0], nil
}
