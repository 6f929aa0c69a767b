package images

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStore struct {
	mu      sync.Mutex
	removed []string
}

func (s *recordingStore) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	return name, nil
}

func (s *recordingStore) Remove(ctx context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, ref)
	return nil
}

func (s *recordingStore) URL(ref string) string { return "/" + ref }

func (s *recordingStore) Removed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.removed...)
}

func TestReplaceDeletesOnlyOldRef(t *testing.T) {
	store := &recordingStore{}
	m := NewManager(store)

	m.Replace("images/old.png", "images/new.png")

	require.Eventually(t, func() bool {
		return len(store.Removed()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"images/old.png"}, store.Removed())
}

func TestReplaceSkipsEmptyAndUnchangedRefs(t *testing.T) {
	store := &recordingStore{}
	m := NewManager(store)

	m.Replace("", "images/new.png")
	m.Replace("images/same.png", "images/same.png")

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, store.Removed())
}

func TestDeleteRemovesRef(t *testing.T) {
	store := &recordingStore{}
	m := NewManager(store)

	m.Delete("images/gone.png")
	m.Delete("")

	require.Eventually(t, func() bool {
		return len(store.Removed()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"images/gone.png"}, store.Removed())
}
