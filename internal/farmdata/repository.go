package farmdata

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kisanmitra/kisanmitra/pkg/enums"
	pkgerrors "github.com/kisanmitra/kisanmitra/pkg/errors"
	"github.com/kisanmitra/kisanmitra/pkg/types"
)

const dateLayout = "2006-01-02"

type adviceRecord struct {
	// userID 0 marks advice shown to every farmer.
	userID int64
	item   types.AgricultureAdvice
}

// Repository is the in-memory store behind the development backend.
type Repository struct {
	mu        sync.RWMutex
	users     map[int64]types.User
	crops     map[string]types.CropInfo
	cropOrder []string
	advice    []adviceRecord

	now   func() time.Time
	newID func() string
}

// Option customizes a Repository.
type Option func(*Repository)

// WithClock overrides the time source used for weather dates and advice timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		if now != nil {
			r.now = now
		}
	}
}

// WithIDGenerator overrides how crop ids are minted.
func WithIDGenerator(newID func() string) Option {
	return func(r *Repository) {
		if newID != nil {
			r.newID = newID
		}
	}
}

// NewRepository returns an empty repository.
func NewRepository(opts ...Option) *Repository {
	repo := &Repository{
		users: make(map[int64]types.User),
		crops: make(map[string]types.CropInfo),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(repo)
		}
	}
	return repo
}

// NewSeededRepository returns a repository loaded with the demo fixtures.
func NewSeededRepository(opts ...Option) *Repository {
	repo := NewRepository(opts...)
	repo.Seed(DefaultFixtures())
	return repo
}

// Seed loads fixtures, replacing records that share an id.
func (r *Repository) Seed(f Fixtures) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range f.Users {
		r.users[user.ID] = user
	}
	for _, crop := range f.Crops {
		if _, exists := r.crops[crop.ID]; !exists {
			r.cropOrder = append(r.cropOrder, crop.ID)
		}
		r.crops[crop.ID] = crop
	}
	for _, a := range f.Advice {
		r.advice = append(r.advice, adviceRecord{userID: a.UserID, item: a.Advice})
	}
}

// ListCrops returns the user's crops in insertion order.
func (r *Repository) ListCrops(_ context.Context, userID int64) []types.CropInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]types.CropInfo, 0)
	for _, id := range r.cropOrder {
		if crop := r.crops[id]; crop.UserID == userID {
			out = append(out, crop)
		}
	}
	return out
}

// CreateCrop stores a new crop under a fresh id.
func (r *Repository) CreateCrop(_ context.Context, input types.NewCrop) (types.CropInfo, error) {
	if input.UserID != 0 {
		r.mu.RLock()
		_, ok := r.users[input.UserID]
		r.mu.RUnlock()
		if !ok {
			return types.CropInfo{}, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
	}

	crop := types.CropInfo{
		ID:           r.newID(),
		UserID:       input.UserID,
		Name:         strings.TrimSpace(input.Name),
		Variety:      strings.TrimSpace(input.Variety),
		PlantingDate: input.PlantingDate,
		HarvestDate:  input.HarvestDate,
		Stage:        input.Stage,
	}
	if crop.Stage == "" {
		crop.Stage = enums.CropStagePlanted
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.crops[crop.ID] = crop
	r.cropOrder = append(r.cropOrder, crop.ID)
	return crop, nil
}

// UpdateCrop applies a partial update to an existing crop.
func (r *Repository) UpdateCrop(_ context.Context, id string, patch types.CropPatch) (types.CropInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	crop, ok := r.crops[id]
	if !ok {
		return types.CropInfo{}, pkgerrors.New(pkgerrors.CodeNotFound, "crop not found")
	}
	crop = patch.Apply(crop)
	if crop.HarvestDate != "" && crop.HarvestDate < crop.PlantingDate {
		return types.CropInfo{}, pkgerrors.New(pkgerrors.CodeValidation, "harvest date must not be before planting date").
			WithDetails(map[string]string{"harvestDate": "must be on or after plantingDate"})
	}
	r.crops[id] = crop
	return crop, nil
}

// AdviceFilter narrows ListAdvice. Zero fields match everything.
type AdviceFilter struct {
	UserID   int64
	Category enums.AdviceCategory
}

// ListAdvice returns matching advice, newest first. A user filter also
// includes advice addressed to every farmer.
func (r *Repository) ListAdvice(_ context.Context, filter AdviceFilter) []types.AgricultureAdvice {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]types.AgricultureAdvice, 0)
	for _, rec := range r.advice {
		if filter.UserID != 0 && rec.userID != 0 && rec.userID != filter.UserID {
			continue
		}
		if filter.Category != "" && rec.item.Category != filter.Category {
			continue
		}
		out = append(out, rec.item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DateCreated > out[j].DateCreated
	})
	return out
}

func (r *Repository) GetUser(_ context.Context, id int64) (types.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return types.User{}, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return user, nil
}

func (r *Repository) UpdateUser(_ context.Context, id int64, patch types.UserPatch) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return types.User{}, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	user = patch.Apply(user)
	r.users[id] = user
	return user, nil
}

func (r *Repository) today() time.Time {
	now := r.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
