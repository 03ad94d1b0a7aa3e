package confirm

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConfirm_CallerWaitsUntilDismissal(t *testing.T) {
	b := NewBroker()
	r := b.Confirm("Error", "bad input")

	var proceeded atomic.Bool
	go func() {
		<-r.Done()
		proceeded.Store(true)
	}()

	require.Never(t, func() bool { return proceeded.Load() },
		100*time.Millisecond, 10*time.Millisecond,
		"code after the wait must not run before dismissal")

	b.Dismiss()

	require.Eventually(t, func() bool { return proceeded.Load() },
		time.Second, 5*time.Millisecond)
}

func TestConfirm_QueueIsFIFO(t *testing.T) {
	b := NewBroker()

	first := b.Confirm("First", "one")
	second := b.Confirm("Second", "two")

	require.Equal(t, 2, b.Pending())
	require.Same(t, first, b.Current(), "only the head is visible")

	b.Dismiss()
	require.Same(t, second, b.Current())

	select {
	case <-first.Done():
	default:
		t.Fatal("dismissed head must be completed")
	}
	select {
	case <-second.Done():
		t.Fatal("queued request must not complete before its dismissal")
	default:
	}

	b.Dismiss()
	require.Nil(t, b.Current())
	require.Zero(t, b.Pending())
	<-second.Done()
}

func TestDismiss_NothingPendingIsNoop(t *testing.T) {
	b := NewBroker()
	require.NotPanics(t, b.Dismiss)
	require.Nil(t, b.Current())
}

func TestRequest_CompletesExactlyOnce(t *testing.T) {
	b := NewBroker()
	r := b.Confirm("Once", "only")

	b.Dismiss()
	// Completing an already-completed request must not panic (double close).
	require.NotPanics(t, r.complete)
	<-r.Done()
}

func TestChanged_SignalsOnConfirmAndDismiss(t *testing.T) {
	b := NewBroker()

	b.Confirm("A", "a")
	select {
	case <-b.Changed():
	default:
		t.Fatal("expected a change signal after Confirm")
	}

	b.Dismiss()
	select {
	case <-b.Changed():
	default:
		t.Fatal("expected a change signal after Dismiss")
	}
}

func TestRequest_Accessors(t *testing.T) {
	b := NewBroker()
	r := b.Confirm("Title", "Message")

	require.NotEmpty(t, r.ID())
	require.Equal(t, "Title", r.Title())
	require.Equal(t, "Message", r.Message())

	other := b.Confirm("Other", "x")
	require.NotEqual(t, r.ID(), other.ID())
}
