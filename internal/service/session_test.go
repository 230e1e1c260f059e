package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateworks/storefront/internal/catalog"
	"github.com/plateworks/storefront/pkg/logger"
)

type fakeLoader struct {
	snap *catalog.Snapshot
	err  error
}

func (f *fakeLoader) LoadSnapshot(ctx context.Context, restaurantID string) (*catalog.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.snap, nil
}

func TestSessionServiceOpenAndGet(t *testing.T) {
	svc := NewSessionService(&fakeLoader{snap: testChatSnapshot()}, logger.Global())

	sess, err := svc.Open(context.Background(), "rest-1", "user-1", "")
	require.NoError(t, err)
	assert.Equal(t, "rest-1", sess.RestaurantID)
	assert.Equal(t, "user-1", sess.UserID)
	assert.Len(t, sess.Transcript(), 1)

	got, err := svc.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)
}

func TestSessionServiceOpenWithPendingItem(t *testing.T) {
	svc := NewSessionService(&fakeLoader{snap: testChatSnapshot()}, logger.Global())

	sess, err := svc.Open(context.Background(), "rest-1", "", "item-veggie")
	require.NoError(t, err)

	transcript := sess.Transcript()
	require.Len(t, transcript, 2)
	assert.Contains(t, transcript[1].Content, "You've selected Veggie Roll.")
}

func TestSessionServiceOpenIgnoresUnknownPendingItem(t *testing.T) {
	svc := NewSessionService(&fakeLoader{snap: testChatSnapshot()}, logger.Global())

	sess, err := svc.Open(context.Background(), "rest-1", "", "item-nope")
	require.NoError(t, err)
	assert.Len(t, sess.Transcript(), 1)
}

func TestSessionServiceOpenLoaderError(t *testing.T) {
	svc := NewSessionService(&fakeLoader{err: errors.New("not found")}, logger.Global())

	_, err := svc.Open(context.Background(), "rest-404", "", "")
	assert.Error(t, err)
}

func TestSessionServiceClose(t *testing.T) {
	svc := NewSessionService(&fakeLoader{snap: testChatSnapshot()}, logger.Global())

	sess, err := svc.Open(context.Background(), "rest-1", "", "")
	require.NoError(t, err)

	svc.Close(sess.ID)
	_, err = svc.Get(sess.ID)
	assert.Error(t, err)

	// Closing twice is harmless.
	svc.Close(sess.ID)
}
