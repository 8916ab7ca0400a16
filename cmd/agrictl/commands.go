package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kisanmitra/kisanmitra/internal/advice"
	"github.com/kisanmitra/kisanmitra/internal/crops"
	"github.com/kisanmitra/kisanmitra/internal/dashboard"
	"github.com/kisanmitra/kisanmitra/internal/users"
	"github.com/kisanmitra/kisanmitra/internal/weather"
	"github.com/kisanmitra/kisanmitra/pkg/apiclient"
	"github.com/kisanmitra/kisanmitra/pkg/enums"
	"github.com/kisanmitra/kisanmitra/pkg/logger"
	"github.com/kisanmitra/kisanmitra/pkg/types"
)

const defaultWatchInterval = 5 * time.Minute

type options struct {
	cmd      string
	hasLoc   bool
	lat      float64
	lon      float64
	userID   int64
	days     int
	category string
	id       string
	name     string
	variety  string
	planting string
	harvest  string
	stage    string
	interval time.Duration
}

type app struct {
	weather   weather.Service
	crops     crops.Service
	advice    advice.Service
	users     users.Service
	dashboard *dashboard.Service
	logg      *logger.Logger
	out       io.Writer
}

func newApp(client *apiclient.Client, weatherSvc weather.Service, logg *logger.Logger, out io.Writer) (*app, error) {
	cropSvc, err := crops.NewService(client)
	if err != nil {
		return nil, err
	}
	adviceSvc, err := advice.NewService(client)
	if err != nil {
		return nil, err
	}
	userSvc, err := users.NewService(client)
	if err != nil {
		return nil, err
	}
	dash, err := dashboard.NewService(dashboard.ServiceParams{
		Weather: weatherSvc,
		Crops:   cropSvc,
		Advice:  adviceSvc,
	})
	if err != nil {
		return nil, err
	}
	return &app{
		weather:   weatherSvc,
		crops:     cropSvc,
		advice:    adviceSvc,
		users:     userSvc,
		dashboard: dash,
		logg:      logg,
		out:       out,
	}, nil
}

func (a *app) run(ctx context.Context, opts options) error {
	switch opts.cmd {
	case "weather":
		return emit(a.out, a.weather.Current(ctx, opts.lat, opts.lon))
	case "forecast":
		return emit(a.out, a.weather.Forecast(ctx, opts.lat, opts.lon, opts.days))
	case "advisory":
		return emit(a.out, a.weather.Advisory(ctx, opts.lat, opts.lon, opts.days))
	case "crops":
		if opts.userID <= 0 {
			return errors.New("missing -user for crops")
		}
		return emit(a.out, a.crops.List(ctx, opts.userID))
	case "add-crop":
		crop, err := newCropFromOptions(opts)
		if err != nil {
			return err
		}
		return emit(a.out, a.crops.Create(ctx, crop))
	case "update-crop":
		if strings.TrimSpace(opts.id) == "" {
			return errors.New("missing -id for update-crop")
		}
		patch, err := cropPatchFromOptions(opts)
		if err != nil {
			return err
		}
		return emit(a.out, a.crops.Update(ctx, opts.id, patch))
	case "advice":
		if opts.category != "" {
			return emit(a.out, a.advice.ByCategory(ctx, enums.AdviceCategory(strings.ToLower(strings.TrimSpace(opts.category)))))
		}
		if opts.userID <= 0 {
			return errors.New("missing -user or -category for advice")
		}
		return emit(a.out, a.advice.ForUser(ctx, opts.userID))
	case "user":
		if opts.userID <= 0 {
			return errors.New("missing -user for user")
		}
		return emit(a.out, a.users.Get(ctx, opts.userID))
	case "dashboard":
		return a.printDashboard(ctx, opts)
	case "watch":
		return a.watch(ctx, opts)
	}
	return fmt.Errorf("unknown command %q", opts.cmd)
}

func (a *app) printDashboard(ctx context.Context, opts options) error {
	snap := a.dashboard.Load(ctx, dashboardRequest(opts))
	if err := writeJSON(a.out, snap); err != nil {
		return err
	}
	if errs := snap.Errors(); len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// watch reloads the dashboard every interval until ctx is done. Section
// failures are logged and never stop the loop.
func (a *app) watch(ctx context.Context, opts options) error {
	interval := opts.interval
	if interval <= 0 {
		interval = defaultWatchInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		snap := a.dashboard.Load(ctx, dashboardRequest(opts))
		if err := writeJSON(a.out, snap); err != nil {
			return err
		}
		for _, msg := range snap.Errors() {
			a.logg.Warn(a.logg.WithField(ctx, "error", msg), "dashboard section failed")
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func dashboardRequest(opts options) dashboard.Request {
	return dashboard.Request{
		UserID:       opts.userID,
		HasLocation:  opts.hasLoc,
		Latitude:     opts.lat,
		Longitude:    opts.lon,
		ForecastDays: opts.days,
	}
}

func newCropFromOptions(opts options) (types.NewCrop, error) {
	if strings.TrimSpace(opts.name) == "" || strings.TrimSpace(opts.planting) == "" {
		return types.NewCrop{}, errors.New("add-crop requires -name and -planting")
	}
	crop := types.NewCrop{
		UserID:       opts.userID,
		Name:         strings.TrimSpace(opts.name),
		Variety:      strings.TrimSpace(opts.variety),
		PlantingDate: strings.TrimSpace(opts.planting),
		HarvestDate:  strings.TrimSpace(opts.harvest),
	}
	if opts.stage != "" {
		stage, err := enums.ParseCropStage(opts.stage)
		if err != nil {
			return types.NewCrop{}, err
		}
		crop.Stage = stage
	}
	return crop, nil
}

func cropPatchFromOptions(opts options) (types.CropPatch, error) {
	var patch types.CropPatch
	if v := strings.TrimSpace(opts.name); v != "" {
		patch.Name = &v
	}
	if v := strings.TrimSpace(opts.variety); v != "" {
		patch.Variety = &v
	}
	if v := strings.TrimSpace(opts.planting); v != "" {
		patch.PlantingDate = &v
	}
	if v := strings.TrimSpace(opts.harvest); v != "" {
		patch.HarvestDate = &v
	}
	if opts.stage != "" {
		stage, err := enums.ParseCropStage(opts.stage)
		if err != nil {
			return types.CropPatch{}, err
		}
		patch.Stage = &stage
	}
	if patch.IsEmpty() {
		return types.CropPatch{}, errors.New("update-crop needs at least one field to change")
	}
	return patch, nil
}

// emit prints the payload of a successful result, or returns its failure.
func emit[T any](w io.Writer, res apiclient.Result[T]) error {
	data, ok := res.Data()
	if !ok {
		return res.Err()
	}
	return writeJSON(w, data)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
