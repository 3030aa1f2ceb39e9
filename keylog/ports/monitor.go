package ports

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

// pollingInterval is how often the monitor looks for new devices.
const pollingInterval = 5 * time.Second

// DeviceOpener opens a device for reading.
type DeviceOpener interface {
	Open(path string) (io.ReadCloser, error)
}

type serialOpener struct{}

func (serialOpener) Open(path string) (io.ReadCloser, error) {
	return Open(path)
}

// MonitoringDeviceReader polls for ZMK serial devices and reads every one it finds
// until it disconnects.
type MonitoringDeviceReader struct {
	devicesList map[string]io.ReadCloser
	lock        sync.RWMutex

	opener DeviceOpener
	lister func() ([]string, error)

	pollingInterval time.Duration
}

func DefaultMonitoringDeviceReader() *MonitoringDeviceReader {
	return NewMonitoringDeviceReader(serialOpener{}, GetAvailableDevices, pollingInterval)
}

func NewMonitoringDeviceReader(
	opener DeviceOpener,
	lister func() ([]string, error),
	interval time.Duration,
) *MonitoringDeviceReader {
	return &MonitoringDeviceReader{
		devicesList:     make(map[string]io.ReadCloser),
		lock:            sync.RWMutex{},
		opener:          opener,
		lister:          lister,
		pollingInterval: interval,
	}
}

func (r *MonitoringDeviceReader) Close() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	for path, device := range r.devicesList {
		if err := device.Close(); err != nil {
			return fmt.Errorf("error closing device %s: %w", path, err)
		}

		delete(r.devicesList, path)
	}

	return nil
}

// Devices lists the paths currently being read.
func (r *MonitoringDeviceReader) Devices() []string {
	r.lock.RLock()
	defer r.lock.RUnlock()

	result := make([]string, 0, len(r.devicesList))
	for path := range r.devicesList {
		result = append(result, path)
	}

	return result
}

func (r *MonitoringDeviceReader) removeDevice(devicePath string) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if device, exists := r.devicesList[devicePath]; exists {
		device.Close()
		delete(r.devicesList, devicePath)
		slog.Info("Device closed and removed from list", "path", devicePath)
	}
}

// AddDevice opens devicePath and forwards its lines to out. Known devices are
// skipped.
func (r *MonitoringDeviceReader) AddDevice(ctx context.Context, devicePath string, out chan<- string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, exists := r.devicesList[devicePath]; exists {
		slog.Debug("Device already exists, skipping", "path", devicePath)

		return nil
	}

	device, err := r.opener.Open(devicePath)
	if err != nil {
		return fmt.Errorf("error opening device %s: %w", devicePath, err)
	}

	r.devicesList[devicePath] = device

	go func() {
		slog.Info("Device loop started", "path", devicePath)

		defer r.removeDevice(devicePath)

		for line := range ReadFile(ctx, device) {
			select {
			case out <- line:
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Channel starts polling and returns the channel all device lines go to. Polling
// stops when ctx is cancelled.
func (r *MonitoringDeviceReader) Channel(ctx context.Context) <-chan string {
	out := make(chan string, 5)

	go func() {
		slog.Info("Monitoring started")

		defer slog.Info("End monitoring")

		ticker := time.NewTicker(r.pollingInterval)
		defer ticker.Stop()

		for {
			r.poll(ctx, out)

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	return out
}

func (r *MonitoringDeviceReader) poll(ctx context.Context, out chan<- string) {
	devices, err := r.lister()
	if err != nil {
		slog.Error("Error finding devices", "error", err)

		return
	}

	for _, devicePath := range devices {
		err := r.AddDevice(ctx, devicePath, out)
		if err != nil {
			slog.Error("Could not add device", "path", devicePath, "error", err)
		}
	}
}
