package users

import (
	"context"
	"net/http"
	"strconv"

	"github.com/kisanmitra/kisanmitra/pkg/apiclient"
	pkgerrors "github.com/kisanmitra/kisanmitra/pkg/errors"
	"github.com/kisanmitra/kisanmitra/pkg/types"
)

// Service reads and updates farmer profiles.
type Service interface {
	Get(ctx context.Context, userID int64) apiclient.Result[types.User]
	Update(ctx context.Context, userID int64, patch types.UserPatch) apiclient.Result[types.User]
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

func (s *service) Get(ctx context.Context, userID int64) apiclient.Result[types.User] {
	return apiclient.Do[types.User](ctx, s.client, s.path(userID), apiclient.RequestOptions{Operation: "users.get"})
}

func (s *service) Update(ctx context.Context, userID int64, patch types.UserPatch) apiclient.Result[types.User] {
	return apiclient.Do[types.User](ctx, s.client, s.path(userID), apiclient.RequestOptions{
		Method:    http.MethodPut,
		Body:      patch,
		Operation: "users.update",
	})
}

func (s *service) path(userID int64) string {
	return s.client.Endpoints().Path(apiclient.ResourceUser, strconv.FormatInt(userID, 10))
}
