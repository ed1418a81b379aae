// Code hand-written in the shape mockgen would generate for the Publisher
// interface in publisher.go (mockgen itself isn't run as part of this
// build).

package eventbus

import (
	"context"
	"reflect"

	"go.uber.org/mock/gomock"
)

// MockPublisher is a mock of the Publisher interface.
type MockPublisher struct {
	ctrl     *gomock.Controller
	recorder *MockPublisherMockRecorder
}

// MockPublisherMockRecorder is the mock recorder for MockPublisher.
type MockPublisherMockRecorder struct {
	mock *MockPublisher
}

// NewMockPublisher creates a new mock instance.
func NewMockPublisher(ctrl *gomock.Controller) *MockPublisher {
	mock := &MockPublisher{ctrl: ctrl}
	mock.recorder = &MockPublisherMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockPublisher) EXPECT() *MockPublisherMockRecorder {
	return m.recorder
}

// PublishValidated mocks base method.
func (m *MockPublisher) PublishValidated(ctx context.Context, event ValidatedEvent) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PublishValidated", ctx, event)
	ret0, _ := ret[0].(error)
	return ret0
}

// PublishValidated indicates an expected call of PublishValidated.
func (mr *MockPublisherMockRecorder) PublishValidated(ctx, event any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PublishValidated",
		reflect.TypeOf((*MockPublisher)(nil).PublishValidated), ctx, event)
}

// Close mocks base method.
func (m *MockPublisher) Close() error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Close")
	ret0, _ := ret[0].(error)
	return ret0
}

// Close indicates an expected call of Close.
func (mr *MockPublisherMockRecorder) Close() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Close",
		reflect.TypeOf((*MockPublisher)(nil).Close))
}
