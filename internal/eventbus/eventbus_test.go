package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPublishReachesSubscriber(t *testing.T) {
	b := New()
	defer b.Close()

	got := make(chan DomainEvent, 1)
	b.Subscribe(EventAnalysisFailed, func(e DomainEvent) { got <- e })

	b.Publish(AnalysisFailedEvent{Cycle: 7})

	select {
	case e := <-got:
		ev, ok := e.(AnalysisFailedEvent)
		require.True(t, ok, "unexpected event type %T", e)
		require.Equal(t, uint64(7), ev.Cycle)
	case <-time.After(time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()
	defer b.Close()

	first := make(chan struct{}, 4)
	second := make(chan struct{}, 4)
	unsub := b.Subscribe(EventAnalysisSkipped, func(DomainEvent) { first <- struct{}{} })
	b.Subscribe(EventAnalysisSkipped, func(DomainEvent) { second <- struct{}{} })

	unsub()
	b.Publish(AnalysisSkippedEvent{})

	select {
	case <-second:
	case <-time.After(time.Second):
		t.Fatal("remaining subscriber was not called")
	}
	require.Len(t, first, 0, "unsubscribed handler must not run")
}

func TestHandlerPanicDoesNotStopDispatch(t *testing.T) {
	b := New()
	defer b.Close()

	done := make(chan struct{}, 1)
	b.Subscribe(EventError, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventConfigSaved, func(DomainEvent) { done <- struct{}{} })

	b.Publish(ErrorEvent{Message: "x"})
	b.Publish(ConfigSavedEvent{Path: "p"})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatcher died after handler panic")
	}
}
