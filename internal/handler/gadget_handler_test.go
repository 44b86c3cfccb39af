package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/akumarujon/imf-gadget-api/internal/model"
	"github.com/akumarujon/imf-gadget-api/internal/service"
)

// MockGadgetService is a mock implementation of service.GadgetService.
type MockGadgetService struct {
	mock.Mock
}

func (m *MockGadgetService) Get(ctx context.Context, id string) (*model.Gadget, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Gadget), args.Error(1)
}

func (m *MockGadgetService) List(ctx context.Context) ([]service.GadgetView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.GadgetView), args.Error(1)
}

func (m *MockGadgetService) ListByStatus(ctx context.Context, status string) ([]service.GadgetView, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.GadgetView), args.Error(1)
}

func (m *MockGadgetService) Create(ctx context.Context, name, status string) (*model.Gadget, error) {
	args := m.Called(ctx, name, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Gadget), args.Error(1)
}

func (m *MockGadgetService) Update(ctx context.Context, id string, newName, newStatus *string) (*model.Gadget, error) {
	args := m.Called(ctx, id, newName, newStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Gadget), args.Error(1)
}

func (m *MockGadgetService) Decommission(ctx context.Context, id string) (*model.Gadget, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Gadget), args.Error(1)
}

func (m *MockGadgetService) Destroy(ctx context.Context, id string) (*service.SelfDestructResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SelfDestructResult), args.Error(1)
}

func TestGadgetHandler_Update_Validation(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		setupMock    func(*MockGadgetService)
		expectedCode int
	}{
		{
			name: "rename",
			body: `{"name":"Improved Grappling Hook"}`,
			setupMock: func(mSvc *MockGadgetService) {
				mSvc.On("Update", mock.Anything, "42", mock.Anything, mock.Anything).Return(&model.Gadget{
					Name:   "Improved Grappling Hook",
					Status: model.StatusAvailable,
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			// an empty string must not blank the name
			name:         "empty name rejected",
			body:         `{"name":""}`,
			setupMock:    func(mSvc *MockGadgetService) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "empty body rejected",
			body:         `{}`,
			setupMock:    func(mSvc *MockGadgetService) {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockGadgetService)
			tt.setupMock(mockSvc)

			c, rec := newTestContext(t, http.MethodPatch, "/api/gadgets/42", tt.body)
			c.SetParamNames("id")
			c.SetParamValues("42")
			h := NewGadgetHandler(mockSvc)

			assert.NoError(t, h.Update(c))
			assert.Equal(t, tt.expectedCode, rec.Code)
			mockSvc.AssertExpectations(t)
			if tt.expectedCode != http.StatusOK {
				mockSvc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}
