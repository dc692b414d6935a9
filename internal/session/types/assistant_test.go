package types

import "testing"

func TestOwnsTopic(t *testing.T) {
	a := &Assistant{
		ID:       "a1",
		TopicIDs: []string{"t1", "t2"},
		Topics: []*Topic{
			{ID: "t3", AssistantID: "a1"},
		},
	}

	// Membership list counts.
	if !a.OwnsTopic("t1") {
		t.Error("expected ownership via TopicIDs")
	}

	// The hydrated cache counts too, even when the membership list lags.
	if !a.OwnsTopic("t3") {
		t.Error("expected ownership via hydrated Topics")
	}

	if a.OwnsTopic("t4") {
		t.Error("unexpected ownership of unknown topic")
	}

	empty := &Assistant{ID: "a2"}
	if empty.OwnsTopic("t1") {
		t.Error("assistant with no topics owns nothing")
	}
}
