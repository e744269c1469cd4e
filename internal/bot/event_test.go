package bot

import (
	"encoding/json"
	"testing"
)

func TestEventUnmarshal(t *testing.T) {
	var env Envelope
	body := `{"destination":"Ubot","events":[
		{"type":"message","replyToken":"a","source":{"type":"user","userId":"U1"},"message":{"id":"1","type":"text","text":"hi"}},
		{"type":"message","replyToken":"b","message":{"id":"2","type":"location","latitude":35.5,"longitude":139.25}},
		{"type":"message","replyToken":"c","message":{"id":"3","type":"image"}},
		{"type":"follow","replyToken":"d"}
	]}`
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.Destination != "Ubot" || len(env.Events) != 4 {
		t.Fatalf("unexpected envelope %+v", env)
	}

	evs := make([]Event, len(env.Events))
	for i, raw := range env.Events {
		if err := json.Unmarshal(raw, &evs[i]); err != nil {
			t.Fatalf("unmarshal event %d: %v", i, err)
		}
	}

	if text, ok := evs[0].Text(); !ok || text != "hi" || evs[0].Source.UserID != "U1" {
		t.Fatalf("unexpected text event %+v", evs[0])
	}
	if loc, ok := evs[1].Location(); !ok || loc.Latitude != 35.5 || loc.Longitude != 139.25 {
		t.Fatalf("unexpected location event %+v", evs[1])
	}
	if m, ok := evs[2].Message.(UnsupportedMessage); !ok || m.MessageType() != "image" {
		t.Fatalf("unexpected image event %+v", evs[2])
	}
	if evs[3].Message != nil {
		t.Fatalf("follow event should have no message, got %+v", evs[3].Message)
	}
	if _, ok := evs[3].Text(); ok {
		t.Fatal("follow event is not a text message")
	}
}

func TestEventUnmarshalRejectsBadMessage(t *testing.T) {
	var ev Event
	if err := json.Unmarshal([]byte(`{"type":"message","message":{"type":"location","latitude":"north"}}`), &ev); err == nil {
		t.Fatal("expected error for non-numeric latitude")
	}
}
