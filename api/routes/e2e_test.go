package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kisanmitra/kisanmitra/internal/advice"
	"github.com/kisanmitra/kisanmitra/internal/crops"
	"github.com/kisanmitra/kisanmitra/internal/dashboard"
	"github.com/kisanmitra/kisanmitra/internal/farmdata"
	"github.com/kisanmitra/kisanmitra/internal/users"
	"github.com/kisanmitra/kisanmitra/internal/weather"
	"github.com/kisanmitra/kisanmitra/pkg/apiclient"
	"github.com/kisanmitra/kisanmitra/pkg/enums"
	pkgerrors "github.com/kisanmitra/kisanmitra/pkg/errors"
	"github.com/kisanmitra/kisanmitra/pkg/metrics"
	"github.com/kisanmitra/kisanmitra/pkg/types"
)

func newLiveClient(t *testing.T) *apiclient.Client {
	t.Helper()
	repo := farmdata.NewSeededRepository()
	srv := httptest.NewServer(NewRouter(testConfig(), nil, repo, metrics.NewHTTPMetrics(prometheus.NewRegistry()), nil))
	t.Cleanup(srv.Close)

	endpoints, err := apiclient.NewEndpoints(apiclient.ModeDevelopment, srv.URL, 2*time.Second)
	require.NoError(t, err)
	client, err := apiclient.New(endpoints)
	require.NoError(t, err)
	return client
}

func TestClientAgainstDevBackend(t *testing.T) {
	client := newLiveClient(t)
	ctx := context.Background()

	cropSvc, err := crops.NewService(client)
	require.NoError(t, err)

	listed := cropSvc.List(ctx, 1)
	before, ok := listed.Data()
	require.True(t, ok, listed.ErrorMessage())
	require.Len(t, before, 2)

	created := cropSvc.Create(ctx, types.NewCrop{UserID: 1, Name: "Barley", Variety: "RD-2552", PlantingDate: "2026-11-05", Stage: enums.CropStagePlanted})
	crop, ok := created.Data()
	require.True(t, ok, created.ErrorMessage())
	require.NotEmpty(t, crop.ID)

	stage := enums.CropStageGrowing
	updated := cropSvc.Update(ctx, crop.ID, types.CropPatch{Stage: &stage})
	after, ok := updated.Data()
	require.True(t, ok, updated.ErrorMessage())
	assert.Equal(t, enums.CropStageGrowing, after.Stage)
	assert.Equal(t, "RD-2552", after.Variety)

	missing := cropSvc.Update(ctx, "no-such-crop", types.CropPatch{Stage: &stage})
	require.False(t, missing.OK())
	assert.Equal(t, "crop not found", missing.ErrorMessage())
	assert.Equal(t, pkgerrors.CodeApplication, missing.Failure().Code)
	assert.Equal(t, 404, missing.Failure().Status)

	invalid := cropSvc.Create(ctx, types.NewCrop{UserID: 1, PlantingDate: "2026-11-05"})
	require.False(t, invalid.OK())
	assert.Equal(t, "validation failed", invalid.ErrorMessage())
	var body types.ErrorBody
	require.NoError(t, invalid.Failure().DecodeBody(&body))
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
}

func TestAdviceAndUsersAgainstDevBackend(t *testing.T) {
	client := newLiveClient(t)
	ctx := context.Background()

	adviceSvc, err := advice.NewService(client)
	require.NoError(t, err)
	userSvc, err := users.NewService(client)
	require.NoError(t, err)

	byCategory := adviceSvc.ByCategory(ctx, enums.AdviceCategoryPesticide)
	items, ok := byCategory.Data()
	require.True(t, ok, byCategory.ErrorMessage())
	require.Len(t, items, 1)
	assert.Equal(t, "adv-201", items[0].ID)

	unknown := adviceSvc.ByCategory(ctx, enums.AdviceCategory("weeding"))
	assert.Equal(t, "invalid category", unknown.ErrorMessage())

	profile := userSvc.Get(ctx, 2)
	user, ok := profile.Data()
	require.True(t, ok, profile.ErrorMessage())
	assert.Equal(t, "Lakshmi Reddy", user.Name)

	gone := userSvc.Get(ctx, 404)
	assert.Equal(t, "user not found", gone.ErrorMessage())
}

func TestDashboardAgainstDevBackend(t *testing.T) {
	client := newLiveClient(t)

	weatherSvc, err := weather.NewService(client)
	require.NoError(t, err)
	cropSvc, err := crops.NewService(client)
	require.NoError(t, err)
	adviceSvc, err := advice.NewService(client)
	require.NoError(t, err)
	dash, err := dashboard.NewService(dashboard.ServiceParams{Weather: weatherSvc, Crops: cropSvc, Advice: adviceSvc})
	require.NoError(t, err)

	snap := dash.Load(context.Background(), dashboard.Request{UserID: 2, HasLocation: true, Latitude: 17.385, Longitude: 78.4867})

	assert.Empty(t, snap.Errors())
	forecast, ok := snap.Forecast.Data()
	require.True(t, ok)
	assert.Len(t, forecast, weather.DefaultForecastDays)
	require.NotNil(t, snap.Card)
	current, _ := snap.Weather.Data()
	assert.Equal(t, current.Date, snap.Card.Date)

	priority := snap.PriorityAdvice()
	require.NotEmpty(t, priority)
	assert.Equal(t, enums.UrgencyHigh, priority[0].Urgency)
}

func TestClientTimeoutAgainstUnresponsiveBackend(t *testing.T) {
	block := make(chan struct{})
	slow := httptest.NewServer(blockingHandler(block))
	t.Cleanup(slow.Close)
	t.Cleanup(func() { close(block) })

	endpoints, err := apiclient.NewEndpoints(apiclient.ModeDevelopment, slow.URL, 50*time.Millisecond)
	require.NoError(t, err)
	client, err := apiclient.New(endpoints)
	require.NoError(t, err)
	weatherSvc, err := weather.NewService(client)
	require.NoError(t, err)

	start := time.Now()
	result := weatherSvc.Current(context.Background(), 28.6, 77.2)

	require.False(t, result.OK())
	assert.True(t, result.Failure().Timeout())
	assert.Equal(t, "request timed out after 50ms", result.ErrorMessage())
	assert.Less(t, time.Since(start), time.Second)
}

func blockingHandler(block <-chan struct{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}
}
