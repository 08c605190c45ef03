package dataset

import (
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache memoizes loaded frames by absolute path so a study that references
// the same source file more than once parses it a single time. Cached frames
// are cloned on the way out; callers may mutate what they get back.
type Cache struct {
	frames *lru.Cache[string, *Frame]
}

func NewCache(size int) (*Cache, error) {
	frames, err := lru.New[string, *Frame](size)
	if err != nil {
		return nil, err
	}
	return &Cache{frames: frames}, nil
}

// Load returns a frame for path, reading the file only on a cache miss.
// The cache keys by path alone: loads of the same path must use the same
// options, which holds for a study loading train and test identically.
func (c *Cache) Load(path string, opts LoadOptions) (*Frame, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		key = path
	}
	if frame, ok := c.frames.Get(key); ok {
		return frame.Clone(), nil
	}
	frame, err := Load(path, opts)
	if err != nil {
		return nil, err
	}
	c.frames.Add(key, frame.Clone())
	return frame, nil
}

// Len reports the number of cached frames.
func (c *Cache) Len() int { return c.frames.Len() }
