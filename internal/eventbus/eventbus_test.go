package eventbus

import "testing"

func TestBusDeliversToSubscriber(t *testing.T) {
	bus := NewTyped[string]()
	ch := bus.Subscribe()
	bus.Publish("hello")
	if v := <-ch; v != "hello" {
		t.Fatalf("expected hello got %v", v)
	}
}

func TestBusDropsWhenSubscriberFull(t *testing.T) {
	bus := NewTyped[int]()
	ch := bus.Subscribe()
	// Overfill the subscriber buffer; publishes must not block.
	for i := 0; i < 100; i++ {
		bus.Publish(i)
	}
	if v := <-ch; v != 0 {
		t.Fatalf("expected first event 0 got %d", v)
	}
}

func TestBusCloseEndsSubscribers(t *testing.T) {
	bus := NewTyped[int]()
	ch1 := bus.Subscribe()
	ch2 := bus.Subscribe()
	bus.Close()
	if _, ok := <-ch1; ok {
		t.Fatalf("expected ch1 closed")
	}
	if _, ok := <-ch2; ok {
		t.Fatalf("expected ch2 closed")
	}
}

func TestBusAfterClose(t *testing.T) {
	bus := NewTyped[int]()
	bus.Close()
	bus.Close()
	bus.Publish(1)
	if _, ok := <-bus.Subscribe(); ok {
		t.Fatal("expected closed channel from Subscribe after Close")
	}
}
