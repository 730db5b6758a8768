package pipeline

import (
	"errors"
	"fmt"
	"os"
)

// ErrPipeCreation is the error resulting if the OS refuses to create one of
// the pipes a pipeline needs. It aborts setup before any process is spawned.
var ErrPipeCreation = errors.New("pipe creation failed")

// Channel is an OS pipe connecting two adjacent pipeline segments. It owns
// both descriptors until Release is called.
type Channel struct {
	r *os.File
	w *os.File
}

// Release closes both ends of the channel. It is safe to call more than
// once; every close happens exactly once.
func (c *Channel) Release() {
	if c.r != nil {
		c.r.Close()
		c.r = nil
	}
	if c.w != nil {
		c.w.Close()
		c.w = nil
	}
}

// newChannelSet allocates the n pipes connecting n+1 pipeline segments.
// Channel i connects segment i's output to segment i+1's input. If any pipe
// cannot be created the already-created ones are released and the whole set
// fails.
func newChannelSet(n int) ([]Channel, error) {
	channels := make([]Channel, 0, n)
	for i := 0; i < n; i++ {
		r, w, err := os.Pipe()
		if err != nil {
			releaseChannels(channels)
			return nil, fmt.Errorf("%w: %v", ErrPipeCreation, err)
		}
		channels = append(channels, Channel{r: r, w: w})
	}
	return channels, nil
}

func releaseChannels(channels []Channel) {
	for i := range channels {
		channels[i].Release()
	}
}
