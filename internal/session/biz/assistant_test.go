package biz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestUseCase(assistants *memAssistantRepo, topics *memTopicRepo) *AssistantUseCase {
	return NewAssistantUseCase(assistants, topics, NewEntityLoader(assistants, topics))
}

func TestCreateAssistantAttachesDefaultTopic(t *testing.T) {
	ctx := context.Background()
	assistants := newMemAssistantRepo()
	topics := newMemTopicRepo()
	uc := newTestUseCase(assistants, topics)

	created, err := uc.CreateAssistant(ctx, &CreateAssistantRequest{Name: "Writer", Emoji: "✍️"})
	require.NoError(t, err)
	require.Len(t, created.TopicIDs, 1)
	require.Len(t, created.Topics, 1)
	require.Equal(t, created.ID, created.Topics[0].AssistantID)

	stored, err := topics.GetByID(ctx, created.TopicIDs[0])
	require.NoError(t, err)
	require.Equal(t, defaultTopicName, stored.Name)
}

func TestCreateAssistantRequiresName(t *testing.T) {
	uc := newTestUseCase(newMemAssistantRepo(), newMemTopicRepo())

	_, err := uc.CreateAssistant(context.Background(), &CreateAssistantRequest{})
	require.Error(t, err)
}

func TestCreateTopicRecordsMembership(t *testing.T) {
	ctx := context.Background()
	assistants := newMemAssistantRepo(testAssistant("a1", "t1"))
	topics := newMemTopicRepo(testTopic("t1", "a1", at(1)))
	uc := newTestUseCase(assistants, topics)

	topic, err := uc.CreateTopic(ctx, "a1", "Research")
	require.NoError(t, err)
	require.Equal(t, "Research", topic.Name)
	require.Equal(t, "a1", topic.AssistantID)

	stored, err := assistants.GetByID(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, []string{"t1", topic.ID}, stored.TopicIDs)
}

func TestTouchTopicBumpsRecency(t *testing.T) {
	ctx := context.Background()
	stale := testTopic("t1", "a1", at(1))
	fresh := testTopic("t2", "a1", at(2))
	assistants := newMemAssistantRepo(testAssistant("a1", "t1", "t2"))
	topics := newMemTopicRepo(stale, fresh)
	uc := newTestUseCase(assistants, topics)

	require.NoError(t, uc.TouchTopic(ctx, "t1"))

	got, err := uc.GetAssistant(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, "t1", got.Topics[0].ID, "touched topic becomes most recent")
}
