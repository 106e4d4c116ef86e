package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/NetindoGit/netindo_api/internal/service"
)

// DeviceCheckWorker marks online devices as offline once they miss their
// check window.
type DeviceCheckWorker struct {
	deviceService *service.DeviceService
	interval      time.Duration
	offlineAfter  time.Duration
}

// NewDeviceCheckWorker constructs a DeviceCheckWorker.
func NewDeviceCheckWorker(deviceService *service.DeviceService, interval, offlineAfter time.Duration) *DeviceCheckWorker {
	return &DeviceCheckWorker{
		deviceService: deviceService,
		interval:      interval,
		offlineAfter:  offlineAfter,
	}
}

// Enabled reports whether the check has a configured interval. A zero
// interval disables the worker.
func (w *DeviceCheckWorker) Enabled() bool {
	return w.interval > 0
}

// Start begins the check loop and listens for context cancellation.
func (w *DeviceCheckWorker) Start(ctx context.Context) {
	if !w.Enabled() {
		return
	}

	log.Info().
		Dur("interval", w.interval).
		Dur("offline_after", w.offlineAfter).
		Msg("Starting device check worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if marked := w.deviceService.SweepStale(w.offlineAfter); marked > 0 {
				log.Info().Int("count", marked).Msg("Devices marked offline")
			}
		case <-ctx.Done():
			log.Info().Msg("Device check worker stopped")
			return
		}
	}
}
