package sse

import (
	"strings"
	"testing"
)

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()

	c1 := &Client{ID: "c1", Channel: make(chan Event, 4)}
	c2 := &Client{ID: "c2", Channel: make(chan Event, 4)}
	hub.Register(c1)
	hub.Register(c2)

	if hub.ClientCount() != 2 {
		t.Fatalf("expected 2 clients, got %d", hub.ClientCount())
	}

	hub.Broadcast(Event{Type: "selection.changed", Data: map[string]string{"topic_id": "t1"}})

	for _, c := range []*Client{c1, c2} {
		select {
		case ev := <-c.Channel:
			if ev.Type != "selection.changed" {
				t.Errorf("client %s: unexpected event type %q", c.ID, ev.Type)
			}
		default:
			t.Errorf("client %s: no event received", c.ID)
		}
	}
}

func TestHubBroadcastSkipsFullClient(t *testing.T) {
	hub := NewHub()

	full := &Client{ID: "full", Channel: make(chan Event)}
	hub.Register(full)

	// Unbuffered channel with no reader: Broadcast must not block.
	hub.Broadcast(Event{Type: "selection.changed"})
}

func TestHubUnregisterClosesChannel(t *testing.T) {
	hub := NewHub()

	c := &Client{ID: "c", Channel: make(chan Event, 1)}
	hub.Register(c)
	hub.Unregister(c)

	if _, open := <-c.Channel; open {
		t.Error("expected channel to be closed after unregister")
	}

	if hub.ClientCount() != 0 {
		t.Errorf("expected 0 clients, got %d", hub.ClientCount())
	}

	// A second unregister of the same client is a no-op.
	hub.Unregister(c)
}

func TestEventFormatSSE(t *testing.T) {
	event := Event{
		Type: "selection.changed",
		Data: map[string]string{"assistant_id": "a1"},
	}

	out := event.FormatSSE()

	if !strings.HasPrefix(out, "event: selection.changed\n") {
		t.Errorf("unexpected event line: %q", out)
	}
	if !strings.Contains(out, `data: {"assistant_id":"a1"}`) {
		t.Errorf("unexpected data line: %q", out)
	}
	if !strings.HasSuffix(out, "\n\n") {
		t.Errorf("event must end with a blank line: %q", out)
	}
}
