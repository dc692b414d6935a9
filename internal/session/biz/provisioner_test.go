package biz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateDefaultTopicPersists(t *testing.T) {
	ctx := context.Background()
	topics := newMemTopicRepo()
	p := NewDefaultProvisioner(newMemAssistantRepo(), topics, zap.NewNop())

	topic, err := p.CreateDefaultTopic(ctx, "a1")
	require.NoError(t, err)
	require.NotEmpty(t, topic.ID)
	require.Equal(t, "a1", topic.AssistantID)
	require.Equal(t, defaultTopicName, topic.Name)

	stored, err := topics.GetByID(ctx, topic.ID)
	require.NoError(t, err)
	require.Equal(t, "a1", stored.AssistantID)
}

func TestInitializeDefaultAssistantsPersistsPair(t *testing.T) {
	ctx := context.Background()
	assistants := newMemAssistantRepo()
	topics := newMemTopicRepo()
	p := NewDefaultProvisioner(assistants, topics, zap.NewNop())

	created, err := p.InitializeDefaultAssistants(ctx)
	require.NoError(t, err)
	require.Len(t, created, 1)

	a := created[0]
	require.Equal(t, defaultAssistantName, a.Name)
	require.Len(t, a.Topics, 1)
	require.Equal(t, []string{a.Topics[0].ID}, a.TopicIDs)
	require.Equal(t, a.ID, a.Topics[0].AssistantID)

	stored, err := assistants.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, a.TopicIDs, stored.TopicIDs)

	storedTopics, err := topics.ListByAssistant(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, storedTopics, 1)
}
