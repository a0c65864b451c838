package events_test

import (
	"context"
	"errors"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	kgo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-orchestrator/infrastructure/events"
	"github.com/vfg2006/campaign-orchestrator/infrastructure/events/mocks"
	"github.com/vfg2006/campaign-orchestrator/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestProducer_PublishTransition(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	writer := mocks.NewMockMessageWriter(ctrl)
	prod := events.NewProducerWithWriter(writer)

	transition := domain.Transition{
		RunID:     "run-1",
		AccountID: "1112223333",
		RowIndex:  4,
		RecordID:  "r-4",
		From:      domain.StatusVideoReady,
		To:        domain.StatusRunning,
		At:        time.Unix(0, 0).UTC(),
	}

	writer.EXPECT().
		WriteMessages(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msgs ...kgo.Message) error {
			require.Len(t, msgs, 1)
			assert.Equal(t, "1112223333", string(msgs[0].Key))

			var got domain.Transition
			require.NoError(t, jsoniter.Unmarshal(msgs[0].Value, &got))
			assert.Equal(t, transition, got)
			return nil
		})

	require.NoError(t, prod.PublishTransition(context.Background(), transition))
}

func TestProducer_PublishTransitionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	writer := mocks.NewMockMessageWriter(ctrl)
	prod := events.NewProducerWithWriter(writer)

	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("write failed"))
	writer.EXPECT().Close().Return(nil)

	err := prod.PublishTransition(context.Background(), domain.Transition{AccountID: "1"})
	assert.EqualError(t, err, "write failed")
	assert.NoError(t, prod.Close())
}

func TestNewPublisher_WithoutBroker(t *testing.T) {
	publisher := events.NewPublisher("", "topic")

	_, ok := publisher.(events.LogPublisher)
	assert.True(t, ok)
	assert.NoError(t, publisher.PublishTransition(context.Background(), domain.Transition{}))
	assert.NoError(t, publisher.Close())
}
