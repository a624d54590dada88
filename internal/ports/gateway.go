package ports

import (
	"context"

	"github.com/nkaddour/ttc/internal/domain"
)

// AuthGateway is the slice of the backend the session service talks to.
type AuthGateway interface {
	Login(ctx context.Context, username, password string) (domain.Token, error)
	Register(ctx context.Context, reg domain.Registration) (domain.User, error)
	CurrentUser(ctx context.Context) (domain.User, error)
}

// DashboardGateway is the slice of the backend the dashboard aggregates.
type DashboardGateway interface {
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	ListProxies(ctx context.Context) ([]domain.Proxy, error)
	ListSchedules(ctx context.Context) ([]domain.Schedule, error)
	ListEngagements(ctx context.Context) ([]domain.Engagement, error)
}

// ResourceGateway covers the CRUD and engagement endpoints.
type ResourceGateway interface {
	DashboardGateway

	GetAccount(ctx context.Context, id int64) (domain.Account, error)
	CreateAccount(ctx context.Context, account domain.NewAccount) (domain.Account, error)
	UpdateAccount(ctx context.Context, id int64, account domain.NewAccount) (domain.Account, error)
	DeleteAccount(ctx context.Context, id int64) error

	CreateProxy(ctx context.Context, proxy domain.NewProxy) (domain.Proxy, error)
	DeleteProxy(ctx context.Context, id int64) error

	GetSchedule(ctx context.Context, id int64) (domain.Schedule, error)
	CreateSchedule(ctx context.Context, schedule domain.NewSchedule) (domain.Schedule, error)
	DeleteSchedule(ctx context.Context, id int64) error

	Like(ctx context.Context, req domain.LikeRequest) (domain.Engagement, error)
	Comment(ctx context.Context, req domain.CommentRequest) (domain.Engagement, error)
	Share(ctx context.Context, req domain.ShareRequest) (domain.Engagement, error)
	Save(ctx context.Context, req domain.SaveRequest) (domain.Engagement, error)
	Follow(ctx context.Context, req domain.FollowRequest) (domain.Engagement, error)
}
