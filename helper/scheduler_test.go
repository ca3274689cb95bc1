package helper

import (
	"testing"
	"time"

	"event_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteFinishedEvents(t *testing.T) {
	db := setupTestDB(t)

	finished := seedEvent(t, db, func(e *model.Event) {
		e.Slug = "finished"
		e.Date = time.Now().Add(-24 * time.Hour)
	})
	upcoming := seedEvent(t, db, func(e *model.Event) {
		e.Slug = "upcoming"
	})
	pastDraft := seedEvent(t, db, func(e *model.Event) {
		e.Slug = "past-draft"
		e.Date = time.Now().Add(-24 * time.Hour)
		e.Status = model.EventDraft
	})

	CompleteFinishedEvents()

	var reloaded model.Event
	require.NoError(t, db.First(&reloaded, finished.ID).Error)
	assert.Equal(t, model.EventCompleted, reloaded.Status)

	reloaded = model.Event{}
	require.NoError(t, db.First(&reloaded, upcoming.ID).Error)
	assert.Equal(t, model.EventPublished, reloaded.Status)

	// Drafts never complete; publication is a deliberate organizer action.
	reloaded = model.Event{}
	require.NoError(t, db.First(&reloaded, pastDraft.ID).Error)
	assert.Equal(t, model.EventDraft, reloaded.Status)
}
