package advice

import (
	"context"
	"net/url"
	"strconv"

	"github.com/kisanmitra/kisanmitra/pkg/apiclient"
	"github.com/kisanmitra/kisanmitra/pkg/enums"
	pkgerrors "github.com/kisanmitra/kisanmitra/pkg/errors"
	"github.com/kisanmitra/kisanmitra/pkg/types"
)

// Service reads agricultural advice.
type Service interface {
	ForUser(ctx context.Context, userID int64) apiclient.Result[[]types.AgricultureAdvice]
	ByCategory(ctx context.Context, category enums.AdviceCategory) apiclient.Result[[]types.AgricultureAdvice]
}

type service struct {
	client *apiclient.Client
}

func NewService(client *apiclient.Client) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "api client is required")
	}
	return &service{client: client}, nil
}

// ForUser issues GET /api/advice?userId=.
func (s *service) ForUser(ctx context.Context, userID int64) apiclient.Result[[]types.AgricultureAdvice] {
	return s.list(ctx, "userId", strconv.FormatInt(userID, 10), "advice.user")
}

// ByCategory issues GET /api/advice?category=. The category is passed through
// unvalidated; the backend decides what it accepts.
func (s *service) ByCategory(ctx context.Context, category enums.AdviceCategory) apiclient.Result[[]types.AgricultureAdvice] {
	return s.list(ctx, "category", category.String(), "advice.category")
}

func (s *service) list(ctx context.Context, key, value, operation string) apiclient.Result[[]types.AgricultureAdvice] {
	query := url.Values{}
	query.Set(key, value)
	path := apiclient.WithQuery(s.client.Endpoints().Path(apiclient.ResourceAdvice), query)
	return apiclient.Do[[]types.AgricultureAdvice](ctx, s.client, path, apiclient.RequestOptions{Operation: operation})
}
