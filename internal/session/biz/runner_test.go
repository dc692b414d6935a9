package biz

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunnerConvergesColdStart(t *testing.T) {
	topic := testTopic("t1", "a1", at(10))
	assistants := newMemAssistantRepo(testAssistant("a1", topic.ID))
	topics := newMemTopicRepo(topic)
	settings := newMemSettingRepo()

	store := NewSelectionStore()
	reconciler := newTestReconciler(assistants, topics, settings, &fakeProvisioner{})
	runner := NewRunner(store, reconciler, assistants, zap.NewNop())

	var notified atomic.Int32
	runner.OnSelectionChange(func(snap Snapshot) {
		notified.Add(1)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner.Start(ctx)
	defer runner.Stop()

	require.Eventually(t, func() bool {
		snap := store.Snapshot()
		return snap.CurrentAssistant != nil &&
			snap.CurrentAssistant.ID == "a1" &&
			snap.CurrentTopicID == "t1"
	}, 2*time.Second, 5*time.Millisecond)

	require.Greater(t, notified.Load(), int32(0))
	require.Equal(t, "a1", settings.get(SettingKeyCurrentAssistant))
}

func TestRunnerCorrectsForeignTopicSelection(t *testing.T) {
	own := testTopic("t1", "a1", at(10))
	foreign := testTopic("t-foreign", "a2", at(20))
	assistants := newMemAssistantRepo(
		testAssistant("a1", own.ID),
		testAssistant("a2", foreign.ID),
	)
	topics := newMemTopicRepo(own, foreign)
	settings := newMemSettingRepo()

	store := NewSelectionStore()
	reconciler := newTestReconciler(assistants, topics, settings, &fakeProvisioner{})
	runner := NewRunner(store, reconciler, assistants, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner.Start(ctx)
	defer runner.Stop()

	require.Eventually(t, func() bool {
		return store.Snapshot().CurrentTopicID == "t1"
	}, 2*time.Second, 5*time.Millisecond)

	// An externally selected foreign topic is switched away from.
	store.SetCurrentTopicID("t-foreign")

	require.Eventually(t, func() bool {
		return store.Snapshot().CurrentTopicID == "t1"
	}, 2*time.Second, 5*time.Millisecond)
}

func TestRunnerStopTerminates(t *testing.T) {
	topic := testTopic("t1", "a1", at(10))
	assistants := newMemAssistantRepo(testAssistant("a1", topic.ID))
	store := NewSelectionStore()
	reconciler := newTestReconciler(assistants, newMemTopicRepo(topic), newMemSettingRepo(), &fakeProvisioner{})
	runner := NewRunner(store, reconciler, assistants, zap.NewNop())

	runner.Start(context.Background())

	done := make(chan struct{})
	go func() {
		runner.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop")
	}
}
