package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMockPublisher_PublishValidatedRecordsCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockPublisher(ctrl)

	event := ValidatedEvent{
		RequestID:         "req-1",
		DBFPath:           "/data/members.dbf",
		RegistrationCount: 4,
		IssueCount:        1,
		ValidatedAt:       time.Now(),
	}

	mock.EXPECT().PublishValidated(gomock.Any(), event).Return(nil)

	err := mock.PublishValidated(context.Background(), event)
	require.NoError(t, err)
}

func TestMockPublisher_CloseRecordsCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockPublisher(ctrl)

	mock.EXPECT().Close().Return(nil)

	require.NoError(t, mock.Close())
}
