package biz

import (
	"context"
	"sync"

	apperrors "github.com/lk2023060901/ai-session-backend/internal/pkg/errors"
	"github.com/lk2023060901/ai-session-backend/internal/session/types"

	"go.uber.org/zap"
)

// In-memory repositories backing the reconciler tests. They return copies the
// way a database read would, so hydrated caches never alias stored records.

type memAssistantRepo struct {
	mu    sync.Mutex
	order []string
	byID  map[string]*types.Assistant

	getErr  error
	listErr error

	updateCalls int
}

func newMemAssistantRepo(assistants ...*types.Assistant) *memAssistantRepo {
	r := &memAssistantRepo{byID: make(map[string]*types.Assistant)}
	for _, a := range assistants {
		r.order = append(r.order, a.ID)
		r.byID[a.ID] = copyAssistant(a)
	}
	return r
}

func (r *memAssistantRepo) Create(ctx context.Context, assistant *types.Assistant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = append(r.order, assistant.ID)
	r.byID[assistant.ID] = copyAssistant(assistant)
	return nil
}

func (r *memAssistantRepo) GetByID(ctx context.Context, id string) (*types.Assistant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	a, ok := r.byID[id]
	if !ok {
		return nil, apperrors.New(apperrors.ErrAssistantNotFound, id)
	}
	return copyAssistant(a), nil
}

func (r *memAssistantRepo) List(ctx context.Context, filter *types.AssistantFilter) ([]*types.Assistant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*types.Assistant, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, copyAssistant(r.byID[id]))
	}
	return out, nil
}

func (r *memAssistantRepo) Update(ctx context.Context, assistant *types.Assistant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCalls++
	r.byID[assistant.ID] = copyAssistant(assistant)
	return nil
}

// copyAssistant mimics a durable read: the stored record carries membership
// ids but never a hydrated topic cache.
func copyAssistant(a *types.Assistant) *types.Assistant {
	cp := *a
	cp.TopicIDs = append([]string(nil), a.TopicIDs...)
	cp.Topics = nil
	return &cp
}

type memTopicRepo struct {
	mu          sync.Mutex
	byID        map[string]*types.Topic
	byAssistant map[string][]string

	getErr  error
	listErr error

	getCalls int
}

func newMemTopicRepo(topics ...*types.Topic) *memTopicRepo {
	r := &memTopicRepo{
		byID:        make(map[string]*types.Topic),
		byAssistant: make(map[string][]string),
	}
	for _, t := range topics {
		cp := *t
		r.byID[t.ID] = &cp
		r.byAssistant[t.AssistantID] = append(r.byAssistant[t.AssistantID], t.ID)
	}
	return r
}

func (r *memTopicRepo) Create(ctx context.Context, topic *types.Topic) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *topic
	r.byID[topic.ID] = &cp
	r.byAssistant[topic.AssistantID] = append(r.byAssistant[topic.AssistantID], topic.ID)
	return nil
}

func (r *memTopicRepo) GetByID(ctx context.Context, id string) (*types.Topic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getCalls++
	if r.getErr != nil {
		return nil, r.getErr
	}
	t, ok := r.byID[id]
	if !ok {
		return nil, apperrors.New(apperrors.ErrTopicNotFound, id)
	}
	cp := *t
	return &cp, nil
}

func (r *memTopicRepo) ListByAssistant(ctx context.Context, assistantID string) ([]*types.Topic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	ids := r.byAssistant[assistantID]
	out := make([]*types.Topic, 0, len(ids))
	for _, id := range ids {
		cp := *r.byID[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memTopicRepo) Update(ctx context.Context, topic *types.Topic) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *topic
	r.byID[topic.ID] = &cp
	return nil
}

type memSettingRepo struct {
	mu     sync.Mutex
	values map[string]string

	getErr  error
	saveErr error

	saveCalls int
}

func newMemSettingRepo() *memSettingRepo {
	return &memSettingRepo{values: make(map[string]string)}
}

func (r *memSettingRepo) Get(ctx context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return "", r.getErr
	}
	v, ok := r.values[key]
	if !ok {
		return "", apperrors.New(apperrors.ErrSettingNotFound, key)
	}
	return v, nil
}

func (r *memSettingRepo) Save(ctx context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saveCalls++
	r.values[key] = value
	return nil
}

func (r *memSettingRepo) get(key string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.values[key]
}

// fakeProvisioner records calls and delegates to injectable functions. Calls
// without an installed function fail loudly so tests catch unexpected
// provisioning.
type fakeProvisioner struct {
	createTopic    func(ctx context.Context, assistantID string) (*types.Topic, error)
	initAssistants func(ctx context.Context) ([]*types.Assistant, error)

	createTopicCalls int
	initCalls        int
}

func (p *fakeProvisioner) CreateDefaultTopic(ctx context.Context, assistantID string) (*types.Topic, error) {
	p.createTopicCalls++
	if p.createTopic == nil {
		return nil, apperrors.NewProvisionerError("unexpected CreateDefaultTopic call")
	}
	return p.createTopic(ctx, assistantID)
}

func (p *fakeProvisioner) InitializeDefaultAssistants(ctx context.Context) ([]*types.Assistant, error) {
	p.initCalls++
	if p.initAssistants == nil {
		return nil, apperrors.NewProvisionerError("unexpected InitializeDefaultAssistants call")
	}
	return p.initAssistants(ctx)
}

func newTestReconciler(assistants *memAssistantRepo, topics *memTopicRepo, settings *memSettingRepo, prov Provisioner) *Reconciler {
	loader := NewEntityLoader(assistants, topics)
	return NewReconciler(settings, assistants, topics, loader, prov, zap.NewNop())
}

// applyEffects folds reconciler effects into a snapshot the way the runner
// applies them to the store.
func applyEffects(snap Snapshot, effects []Effect) Snapshot {
	for _, effect := range effects {
		switch e := effect.(type) {
		case SetCurrentAssistantEffect:
			snap.CurrentAssistant = e.Assistant
		case SetCurrentTopicEffect:
			snap.CurrentTopicID = e.TopicID
		}
	}
	return snap
}
