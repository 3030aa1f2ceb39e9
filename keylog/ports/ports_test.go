package ports_test

import (
	"context"
	"io"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dasdy/keyview/keylog/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readChanLines(c <-chan string) []string {
	result := make([]string, 0)

	for line := range c {
		result = append(result, line)
	}

	return result
}

func TestReadFile(t *testing.T) {
	t.Run("should handle non-empty file", func(t *testing.T) {
		c := ports.ReadFile(context.Background(), strings.NewReader("a\nb\nc\n"))

		assert.Equal(t, []string{"a", "b", "c"}, readChanLines(c))
	})

	t.Run("should handle empty file", func(t *testing.T) {
		c := ports.ReadFile(context.Background(), strings.NewReader(""))

		assert.Equal(t, []string{}, readChanLines(c))
	})

	t.Run("should stop when cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		c := ports.ReadFile(ctx, strings.NewReader("a\nb\nc\n"))

		assert.Less(t, len(readChanLines(c)), 4)
		_, ok := <-c
		assert.False(t, ok)
	})
}

func TestMerge(t *testing.T) {
	t.Run("should handle non-empty files", func(t *testing.T) {
		c := ports.Merge(
			context.Background(),
			ports.ReadFile(context.Background(), strings.NewReader("aa\nbb\ncc\n")),
			ports.ReadFile(context.Background(), strings.NewReader("ab\nba\ncd\n")),
		)

		lines := readChanLines(c)
		slices.Sort(lines)

		assert.Equal(t, []string{"aa", "ab", "ba", "bb", "cc", "cd"}, lines)
	})

	t.Run("should handle when one file is empty", func(t *testing.T) {
		c := ports.Merge(
			context.Background(),
			ports.ReadFile(context.Background(), strings.NewReader("aa\nbb\ncc\n")),
			ports.ReadFile(context.Background(), strings.NewReader("")),
		)

		assert.Equal(t, []string{"aa", "bb", "cc"}, readChanLines(c))
	})

	t.Run("should close with no inputs", func(t *testing.T) {
		assert.Empty(t, readChanLines(ports.Merge(context.Background())))
	})

	t.Run("should close when cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		open := make(chan string, 1)
		open <- "aa"

		c := ports.Merge(ctx, open)
		cancel()

		done := make(chan []string)
		go func() { done <- readChanLines(c) }()

		select {
		case lines := <-done:
			assert.LessOrEqual(t, len(lines), 1)
		case <-time.After(time.Second):
			require.FailNow(t, "merged channel stayed open after cancel")
		}
	})
}

func TestLooksLikeZMKDevice(t *testing.T) {
	testCases := []struct {
		path     string
		expected bool
	}{
		{"/dev/tty.usbmodem12301", true},
		{"/dev/ttyACM0", true},
		{"/dev/ttyS0", false},
		{"/dev/tty.Bluetooth-Incoming-Port", false},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.expected, ports.LooksLikeZMKDevice(tc.path))
		})
	}
}

type fakeOpener struct {
	mu      sync.Mutex
	content map[string]string
	opened  []string
}

func (o *fakeOpener) Open(path string) (io.ReadCloser, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.opened = append(o.opened, path)

	return io.NopCloser(strings.NewReader(o.content[path])), nil
}

func (o *fakeOpener) openCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	return len(o.opened)
}

func TestMonitoringDeviceReader(t *testing.T) {
	opener := &fakeOpener{content: map[string]string{
		"/dev/ttyACM0": "left 1\nleft 2\n",
		"/dev/ttyACM1": "right 1\n",
	}}
	lister := func() ([]string, error) {
		return []string{"/dev/ttyACM0", "/dev/ttyACM1"}, nil
	}

	reader := ports.NewMonitoringDeviceReader(opener, lister, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := reader.Channel(ctx)

	var lines []string
	for range 3 {
		select {
		case line := <-out:
			lines = append(lines, line)
		case <-time.After(time.Second):
			require.FailNow(t, "timed out waiting for device lines", "got %v", lines)
		}
	}

	slices.Sort(lines)
	assert.Equal(t, []string{"left 1", "left 2", "right 1"}, lines)
	assert.Equal(t, 2, opener.openCount())
	require.NoError(t, reader.Close())
}
