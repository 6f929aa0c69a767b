package images

import (
	"context"
	"log"
	"time"
)

const removeTimeout = 10 * time.Second

// Manager owns the lifecycle of a post's image file: when the reference on
// the post changes or the post goes away, the superseded file is deleted.
// Deletions run in the background and never fail the calling mutation;
// failures are logged and swallowed.
type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Replace schedules deletion of oldRef once it has been superseded by
// newRef. Nothing happens when there was no previous image or the reference
// did not change.
func (m *Manager) Replace(oldRef, newRef string) {
	if oldRef == "" || oldRef == newRef {
		return
	}
	go m.remove(oldRef)
}

// Delete schedules deletion of ref, called when a post is removed.
func (m *Manager) Delete(ref string) {
	if ref == "" {
		return
	}
	go m.remove(ref)
}

func (m *Manager) remove(ref string) {
	ctx, cancel := context.WithTimeout(context.Background(), removeTimeout)
	defer cancel()

	if err := m.store.Remove(ctx, ref); err != nil {
		log.Printf("failed to delete image %s: %v", ref, err)
	}
}
