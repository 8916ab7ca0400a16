package crops

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/kisanmitra/kisanmitra/pkg/apiclient"
	pkgerrors "github.com/kisanmitra/kisanmitra/pkg/errors"
	"github.com/kisanmitra/kisanmitra/pkg/types"
)

// Service manages a farmer's crop records on the backend.
type Service interface {
	List(ctx context.Context, userID int64) apiclient.Result[[]types.CropInfo]
	Create(ctx context.Context, crop types.NewCrop) apiclient.Result[types.CropInfo]
	Update(ctx context.Context, id string, patch types.CropPatch) apiclient.Result[types.CropInfo]
}

type service struct {
	client *apiclient.Client
}

// NewService builds a crops service on top of the shared API client.
func NewService(client *apiclient.Client) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "api client is required")
	}
	return &service{client: client}, nil
}

// List issues GET /api/crops?userId=.
func (s *service) List(ctx context.Context, userID int64) apiclient.Result[[]types.CropInfo] {
	query := url.Values{}
	query.Set("userId", strconv.FormatInt(userID, 10))
	path := apiclient.WithQuery(s.client.Endpoints().Path(apiclient.ResourceCrops), query)
	return apiclient.Do[[]types.CropInfo](ctx, s.client, path, apiclient.RequestOptions{Operation: "crops.list"})
}

// Create issues POST /api/crops with the crop as body.
func (s *service) Create(ctx context.Context, crop types.NewCrop) apiclient.Result[types.CropInfo] {
	return apiclient.Do[types.CropInfo](ctx, s.client, s.client.Endpoints().Path(apiclient.ResourceCrops), apiclient.RequestOptions{
		Method:    http.MethodPost,
		Body:      crop,
		Operation: "crops.create",
	})
}

// Update issues PUT /api/crops/{id} with the patch as body. The id is escaped
// but otherwise sent as given; a blank id fails without a request.
func (s *service) Update(ctx context.Context, id string, patch types.CropPatch) apiclient.Result[types.CropInfo] {
	if strings.TrimSpace(id) == "" {
		return apiclient.Fail[types.CropInfo](&apiclient.Failure{Code: pkgerrors.CodeValidation, Message: "crop id is required"})
	}
	return apiclient.Do[types.CropInfo](ctx, s.client, s.client.Endpoints().Path(apiclient.ResourceCrops, id), apiclient.RequestOptions{
		Method:    http.MethodPut,
		Body:      patch,
		Operation: "crops.update",
	})
}
