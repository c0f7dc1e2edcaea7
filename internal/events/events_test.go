package events

import (
	"encoding/json"
	"testing"
)

func TestHubFanOutAndDrop(t *testing.T) {
	h := NewHub()
	a, b := h.Subscribe(), h.Subscribe()
	if h.Subscribers() != 2 {
		t.Fatalf("subscribers = %d", h.Subscribers())
	}

	h.Publish("x")
	if <-a != "x" || <-b != "x" {
		t.Fatal("event not delivered to every subscriber")
	}

	// a full buffer drops instead of blocking
	for i := 0; i < cap(a)+5; i++ {
		h.Publish("flood")
	}
	if len(a) != cap(a) {
		t.Errorf("buffer len = %d, want %d", len(a), cap(a))
	}

	h.Unsubscribe(a)
	h.Unsubscribe(a) // second call is a no-op
	if h.Subscribers() != 1 {
		t.Errorf("subscribers = %d", h.Subscribers())
	}
}

func TestMakeEvent(t *testing.T) {
	raw := MakeEvent("req-1", TypeApplicationCreated, 1, ApplicationCreated{ApplicationID: "app-1", MatchScore: 80})
	var e Event
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		t.Fatal(err)
	}
	if e.Type != TypeApplicationCreated || e.RequestID != "req-1" || e.At.IsZero() {
		t.Errorf("event = %+v", e)
	}
	var data ApplicationCreated
	if err := json.Unmarshal(e.Data, &data); err != nil || data.ApplicationID != "app-1" {
		t.Errorf("data = %+v, %v", data, err)
	}
}
