package domain

import "testing"

func TestEvent_Constructors(t *testing.T) {
	testCases := []struct {
		name      string
		event     Event
		wantTopic Topic
		wantQty   int
		wantHas   bool
	}{
		{"sold", NewSoldEvent("001", 2), TopicSold, 2, true},
		{"refilled", NewRefilledEvent("001", 5), TopicRefilled, 5, true},
		{"stock low", NewStockLowEvent("001"), TopicStockLow, 0, false},
		{"stock ok", NewStockOkEvent("001"), TopicStockOk, 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.event.Topic() != tc.wantTopic {
				t.Errorf("Topic() = %s, want %s", tc.event.Topic(), tc.wantTopic)
			}
			if tc.event.MachineID() != "001" {
				t.Errorf("MachineID() = %q, want 001", tc.event.MachineID())
			}
			qty, has := tc.event.Quantity()
			if qty != tc.wantQty || has != tc.wantHas {
				t.Errorf("Quantity() = (%d, %v), want (%d, %v)", qty, has, tc.wantQty, tc.wantHas)
			}
		})
	}

	if NewSoldEvent("001", 1).ID() == NewSoldEvent("001", 1).ID() {
		t.Error("events should get distinct ids")
	}
}

func TestTopic_String(t *testing.T) {
	want := []string{"sold", "refilled", "stock_low", "stock_ok"}
	topics := Topics()
	if len(topics) != TopicCount {
		t.Fatalf("Topics() returned %d topics, want %d", len(topics), TopicCount)
	}
	for i, topic := range topics {
		if !topic.Valid() {
			t.Errorf("%d should be valid", topic)
		}
		if topic.String() != want[i] {
			t.Errorf("String() = %q, want %q", topic.String(), want[i])
		}
	}
	if Topic(TopicCount).Valid() {
		t.Error("topic past the end should be invalid")
	}
	if Topic(99).String() != "unknown" {
		t.Errorf("unknown topic String() = %q", Topic(99).String())
	}
}
