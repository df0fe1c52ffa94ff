package reports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr1hm/go-disaster-reports/internal/models"
)

func TestCreateSentiment(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)
	ctx := context.Background()

	first, err := svc.CreateSentiment(ctx, models.SentimentInput{
		DisasterReportID: 1, Sentiment: models.SentimentUrgent, Comment: "Butuh air bersih", SubmittedBy: "Ibu Sari",
	})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second, err := svc.CreateSentiment(ctx, models.SentimentInput{
		DisasterReportID: 1, Sentiment: models.SentimentRecovering, Comment: "Listrik sudah menyala", SubmittedBy: "Pak RT",
	})
	require.NoError(t, err)

	list, err := svc.ListSentiments(ctx, nil)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
}

func TestCreateSentiment_Validation(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	_, err := svc.CreateSentiment(context.Background(), models.SentimentInput{Sentiment: "Angry"})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "disasterReportId")
	assert.Contains(t, ve.Fields, "sentiment")
	assert.Contains(t, ve.Fields, "comment")
	assert.Contains(t, ve.Fields, "submittedBy")
	assert.Empty(t, store.sentiments)
}

func TestListDependents_Scoped(t *testing.T) {
	store := &fakeStore{
		centers: []models.EvacuationCenter{{ID: 1, DisasterReportID: 1}, {ID: 2, DisasterReportID: 2}},
		infra:   []models.InfrastructureStatus{{ID: 1, DisasterReportID: 2}},
	}
	svc := newTestService(store)
	ctx := context.Background()

	all, err := svc.ListEvacuationCenters(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	id := int64(2)
	scoped, err := svc.ListEvacuationCenters(ctx, &id)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, int64(2), scoped[0].ID)

	infra, err := svc.ListInfrastructure(ctx, &id)
	require.NoError(t, err)
	assert.Len(t, infra, 1)
}

func TestListDependents_StorageError(t *testing.T) {
	svc := newTestService(&fakeStore{err: errStorage})

	_, err := svc.ListInfrastructure(context.Background(), nil)
	assert.ErrorIs(t, err, errStorage)
}
