package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeviceCheckWorkerDisabledWithoutInterval(t *testing.T) {
	w := NewDeviceCheckWorker(nil, 0, 5*time.Minute)
	assert.False(t, w.Enabled())

	// Start must return immediately instead of arming a ticker.
	done := make(chan struct{})
	go func() {
		w.Start(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disabled worker did not exit")
	}
}

func TestDeviceCheckWorkerEnabledWithInterval(t *testing.T) {
	w := NewDeviceCheckWorker(nil, time.Minute, 5*time.Minute)
	assert.True(t, w.Enabled())
}
