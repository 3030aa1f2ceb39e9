// Package ports reads ZMK debug logs from serial devices.
package ports

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"
)

const (
	BaudRate    = 9600
	readTimeout = 10 * time.Hour
)

// Open opens a serial device for reading log lines.
func Open(path string) (io.ReadCloser, error) {
	port, err := serial.Open(path, &serial.Mode{
		BaudRate: BaudRate,
	})
	if err != nil {
		return nil, fmt.Errorf("could not open port %s: %w", path, err)
	}

	err = port.SetReadTimeout(readTimeout)
	if err != nil {
		port.Close()

		return nil, fmt.Errorf("could not configure port %s: %w", path, err)
	}

	return port, nil
}

// ReadFile sends every line of r to the returned channel and closes it at EOF or
// once ctx is done.
func ReadFile(ctx context.Context, r io.Reader) <-chan string {
	out := make(chan string)

	go func() {
		defer close(out)

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case out <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// Merge forwards lines from all inputs. The result is closed once every input is,
// or once ctx is done.
func Merge(ctx context.Context, inputs ...<-chan string) <-chan string {
	out := make(chan string)

	var wg sync.WaitGroup

	for _, in := range inputs {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for {
				select {
				case line, ok := <-in:
					if !ok {
						return
					}

					select {
					case out <- line:
					case <-ctx.Done():
						return
					}
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

// OpenAll opens every path and merges their lines. The returned closer closes all
// ports, which ends the merged channel, as does cancelling ctx.
func OpenAll(ctx context.Context, paths ...string) (<-chan string, func(), error) {
	readers := make([]io.ReadCloser, 0, len(paths))

	closer := func() {
		for _, r := range readers {
			r.Close()
		}
	}

	chans := make([]<-chan string, 0, len(paths))

	for _, p := range paths {
		r, err := Open(p)
		if err != nil {
			closer()

			return nil, nil, err
		}

		readers = append(readers, r)
		chans = append(chans, ReadFile(ctx, r))
	}

	return Merge(ctx, chans...), closer, nil
}

// LooksLikeZMKDevice matches the names ZMK USB serial consoles get on macOS and
// Linux.
func LooksLikeZMKDevice(path string) bool {
	return strings.Contains(path, "tty.usbmodem") || strings.Contains(path, "ttyACM")
}

// GetAvailableDevices lists serial ports that look like ZMK devices.
func GetAvailableDevices() ([]string, error) {
	names, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("could not get list of serial ports: %w", err)
	}

	result := make([]string, 0, len(names))

	for _, n := range names {
		if LooksLikeZMKDevice(n) {
			result = append(result, n)
		}
	}

	return result, nil
}
