package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/grolo-gateway/internal/events"
	"github.com/magabrotheeeer/grolo-gateway/internal/models"
	"github.com/magabrotheeeer/grolo-gateway/internal/policy"
	services "github.com/magabrotheeeer/grolo-gateway/internal/services/subscription"
)

type BackendMock struct{ mock.Mock }

func (m *BackendMock) Subscription(ctx context.Context, token, user string) (*models.SubscriptionRecord, error) {
	args := m.Called(ctx, token, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubscriptionRecord), args.Error(1)
}

func (m *BackendMock) ListSubscriptions(ctx context.Context, token string) ([]models.SubscriptionRecord, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SubscriptionRecord), args.Error(1)
}

func (m *BackendMock) Permissions(ctx context.Context, token string) (*models.AdminPermissionSet, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminPermissionSet), args.Error(1)
}

func (m *BackendMock) ActivatePaid(ctx context.Context, token, user string) error {
	return m.Called(ctx, token, user).Error(0)
}

func (m *BackendMock) DeactivatePaid(ctx context.Context, token, user string) error {
	return m.Called(ctx, token, user).Error(0)
}

func (m *BackendMock) ExtendTrial(ctx context.Context, token, user string, days int) error {
	return m.Called(ctx, token, user, days).Error(0)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(ctx context.Context, event events.Event) error {
	return m.Called(ctx, event).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func intPtr(v int) *int { return &v }

var (
	admin = models.Caller{Username: "root", Role: models.RoleAdmin, Token: "tok"}
	user  = models.Caller{Username: "alice", Role: models.RoleUser, Token: "user-tok"}

	fullPerms = &models.AdminPermissionSet{
		CanPromote: true, CanDemote: true, CanActivatePaid: true,
		CanDeactivatePaid: true, CanExtendTrial: true, CanViewAdminPanel: true,
	}

	trialRecord = &models.SubscriptionRecord{
		User: "alice", AccountType: models.AccountFree, AccessLevel: models.AccessLimited,
		TrialStatus: models.TrialActive, DaysRemaining: intPtr(3),
	}
	paidRecord = &models.SubscriptionRecord{
		User: "alice", AccountType: models.AccountPaid, IsPaidActive: true, AccessLevel: models.AccessFull,
		TrialStatus: models.TrialNotApplicable, CanUsePremiumFeatures: true,
	}
)

func eventOfType(t events.Type) any {
	return mock.MatchedBy(func(e events.Event) bool { return e.Type == t })
}

func TestSubscriptionService_Status(t *testing.T) {
	tests := []struct {
		name        string
		caller      models.Caller
		target      string
		setupMocks  func(b *BackendMock)
		wantLabel   string
		wantActions models.AvailableActions
		wantErr     error
	}{
		{
			name:   "own trial without admin rights",
			caller: user,
			target: "alice",
			setupMocks: func(b *BackendMock) {
				b.On("Subscription", mock.Anything, "user-tok", "alice").Return(trialRecord, nil).Once()
			},
			wantLabel:   "Free (3d)",
			wantActions: models.AvailableActions{CanViewDetails: true},
		},
		{
			name:   "admin views paid user",
			caller: admin,
			target: "alice",
			setupMocks: func(b *BackendMock) {
				b.On("Permissions", mock.Anything, "tok").Return(fullPerms, nil).Once()
				b.On("Subscription", mock.Anything, "tok", "alice").Return(paidRecord, nil).Once()
			},
			wantLabel:   "Paid",
			wantActions: models.AvailableActions{CanDeactivatePaid: true, CanViewDetails: true},
		},
		{
			name:       "user views someone else",
			caller:     user,
			target:     "bob",
			setupMocks: func(b *BackendMock) {},
			wantErr:    policy.ErrPermissionDenied,
		},
		{
			name:   "backend failure",
			caller: user,
			target: "alice",
			setupMocks: func(b *BackendMock) {
				b.On("Subscription", mock.Anything, "user-tok", "alice").Return(nil, errors.New("boom")).Once()
			},
			wantErr: errors.New("boom"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := new(BackendMock)
			tt.setupMocks(b)
			svc := services.NewSubscriptionService(b, policy.New(7), events.NopPublisher{}, newNoopLogger())

			view, err := svc.Status(context.Background(), tt.caller, tt.target)
			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, policy.ErrPermissionDenied) {
					assert.ErrorIs(t, err, policy.ErrPermissionDenied)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLabel, view.Display.Label)
			assert.Equal(t, tt.wantActions, view.Actions)
			b.AssertExpectations(t)
		})
	}
}

func TestSubscriptionService_List(t *testing.T) {
	t.Run("admin", func(t *testing.T) {
		b := new(BackendMock)
		b.On("Permissions", mock.Anything, "tok").Return(fullPerms, nil).Once()
		b.On("ListSubscriptions", mock.Anything, "tok").Return([]models.SubscriptionRecord{*trialRecord, *paidRecord}, nil).Once()
		svc := services.NewSubscriptionService(b, policy.New(7), events.NopPublisher{}, newNoopLogger())

		views, err := svc.List(context.Background(), admin)
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.True(t, views[0].Actions.CanExtendTrial)
		assert.True(t, views[1].Actions.CanDeactivatePaid)
		b.AssertExpectations(t)
	})

	t.Run("admin without panel access", func(t *testing.T) {
		b := new(BackendMock)
		b.On("Permissions", mock.Anything, "tok").Return(&models.AdminPermissionSet{}, nil).Once()
		svc := services.NewSubscriptionService(b, policy.New(7), events.NopPublisher{}, newNoopLogger())

		_, err := svc.List(context.Background(), admin)
		assert.ErrorIs(t, err, policy.ErrPermissionDenied)
		b.AssertNotCalled(t, "ListSubscriptions", mock.Anything, mock.Anything)
	})
}

func TestSubscriptionService_Activate(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(b *BackendMock, p *PublisherMock)
		wantErr    error
	}{
		{
			name: "success refreshes and publishes",
			setupMocks: func(b *BackendMock, p *PublisherMock) {
				b.On("Permissions", mock.Anything, "tok").Return(fullPerms, nil).Once()
				b.On("Subscription", mock.Anything, "tok", "alice").Return(trialRecord, nil).Once()
				b.On("ActivatePaid", mock.Anything, "tok", "alice").Return(nil).Once()
				b.On("Subscription", mock.Anything, "tok", "alice").Return(paidRecord, nil).Once()
				p.On("Publish", mock.Anything, eventOfType(events.SubscriptionActivated)).Return(nil).Once()
			},
		},
		{
			name: "already paid",
			setupMocks: func(b *BackendMock, p *PublisherMock) {
				b.On("Permissions", mock.Anything, "tok").Return(fullPerms, nil).Once()
				b.On("Subscription", mock.Anything, "tok", "alice").Return(paidRecord, nil).Once()
			},
			wantErr: policy.ErrPermissionDenied,
		},
		{
			name: "publish failure does not fail request",
			setupMocks: func(b *BackendMock, p *PublisherMock) {
				b.On("Permissions", mock.Anything, "tok").Return(fullPerms, nil).Once()
				b.On("Subscription", mock.Anything, "tok", "alice").Return(trialRecord, nil).Once()
				b.On("ActivatePaid", mock.Anything, "tok", "alice").Return(nil).Once()
				b.On("Subscription", mock.Anything, "tok", "alice").Return(paidRecord, nil).Once()
				p.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := new(BackendMock)
			p := new(PublisherMock)
			tt.setupMocks(b, p)
			svc := services.NewSubscriptionService(b, policy.New(7), p, newNoopLogger())

			view, err := svc.Activate(context.Background(), admin, "alice")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				b.AssertNotCalled(t, "ActivatePaid", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Paid", view.Display.Label)
			b.AssertExpectations(t)
			p.AssertExpectations(t)
		})
	}
}

func TestSubscriptionService_Deactivate(t *testing.T) {
	t.Run("self", func(t *testing.T) {
		b := new(BackendMock)
		self := models.Caller{Username: "alice", Role: models.RoleAdmin, Token: "tok"}
		b.On("Permissions", mock.Anything, "tok").Return(fullPerms, nil).Once()
		b.On("Subscription", mock.Anything, "tok", "alice").Return(paidRecord, nil).Once()
		svc := services.NewSubscriptionService(b, policy.New(7), events.NopPublisher{}, newNoopLogger())

		_, err := svc.Deactivate(context.Background(), self, "alice")
		assert.ErrorIs(t, err, policy.ErrSelfActionForbidden)
		b.AssertNotCalled(t, "DeactivatePaid", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("success", func(t *testing.T) {
		b := new(BackendMock)
		p := new(PublisherMock)
		expired := &models.SubscriptionRecord{
			User: "alice", AccountType: models.AccountFree, AccessLevel: models.AccessLimited,
			TrialStatus: models.TrialExpired, DaysRemaining: intPtr(0),
		}
		b.On("Permissions", mock.Anything, "tok").Return(fullPerms, nil).Once()
		b.On("Subscription", mock.Anything, "tok", "alice").Return(paidRecord, nil).Once()
		b.On("DeactivatePaid", mock.Anything, "tok", "alice").Return(nil).Once()
		b.On("Subscription", mock.Anything, "tok", "alice").Return(expired, nil).Once()
		p.On("Publish", mock.Anything, eventOfType(events.SubscriptionDeactivated)).Return(nil).Once()
		svc := services.NewSubscriptionService(b, policy.New(7), p, newNoopLogger())

		view, err := svc.Deactivate(context.Background(), admin, "alice")
		require.NoError(t, err)
		assert.Equal(t, "Expired", view.Display.Label)
		b.AssertExpectations(t)
		p.AssertExpectations(t)
	})
}

func TestSubscriptionService_Extend(t *testing.T) {
	tests := []struct {
		name       string
		days       int
		setupMocks func(b *BackendMock, p *PublisherMock)
		wantErr    error
	}{
		{
			name:       "zero days rejected before backend",
			days:       0,
			setupMocks: func(b *BackendMock, p *PublisherMock) {},
			wantErr:    policy.ErrInvalidRange,
		},
		{
			name:       "too many days",
			days:       366,
			setupMocks: func(b *BackendMock, p *PublisherMock) {},
			wantErr:    policy.ErrInvalidRange,
		},
		{
			name: "success",
			days: 30,
			setupMocks: func(b *BackendMock, p *PublisherMock) {
				b.On("Permissions", mock.Anything, "tok").Return(fullPerms, nil).Once()
				b.On("Subscription", mock.Anything, "tok", "alice").Return(trialRecord, nil).Twice()
				b.On("ExtendTrial", mock.Anything, "tok", "alice", 30).Return(nil).Once()
				p.On("Publish", mock.Anything, eventOfType(events.SubscriptionExtended)).Return(nil).Once()
			},
		},
		{
			name: "paid user",
			days: 30,
			setupMocks: func(b *BackendMock, p *PublisherMock) {
				b.On("Permissions", mock.Anything, "tok").Return(fullPerms, nil).Once()
				b.On("Subscription", mock.Anything, "tok", "alice").Return(paidRecord, nil).Once()
			},
			wantErr: policy.ErrPermissionDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := new(BackendMock)
			p := new(PublisherMock)
			tt.setupMocks(b, p)
			svc := services.NewSubscriptionService(b, policy.New(7), p, newNoopLogger())

			_, err := svc.Extend(context.Background(), admin, "alice", tt.days)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				b.AssertNotCalled(t, "ExtendTrial", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			b.AssertExpectations(t)
			p.AssertExpectations(t)
		})
	}
}
