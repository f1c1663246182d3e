// Package state holds the dashboard's filter selections and the last query
// result, and notifies subscribers whenever either changes.
package state

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/argoview/backend-go/internal/argo"
	"github.com/argoview/backend-go/internal/export"
	"github.com/argoview/backend-go/internal/models"
	"github.com/rs/zerolog/log"
)

type Filters struct {
	Dataset    models.Dataset
	Region     models.Region
	StartDate  string
	EndDate    string
	Parameters []string
}

// QueryParams converts the filter selection into source query parameters
func (f Filters) QueryParams() models.QueryParams {
	return models.QueryParams{
		Region:     f.Region,
		StartDate:  f.StartDate,
		EndDate:    f.EndDate,
		Parameters: slices.Clone(f.Parameters),
		Dataset:    f.Dataset,
	}
}

// CanFetchData requires a dataset, a region and at least one parameter
func (f Filters) CanFetchData() bool {
	return f.Dataset != "" && f.Region != "" && len(f.Parameters) > 0
}

// CanViewMap additionally requires a complete date range
func (f Filters) CanViewMap() bool {
	return f.CanFetchData() && f.StartDate != "" && f.EndDate != ""
}

func (f Filters) CanDownloadData() bool {
	return f.CanFetchData()
}

// Snapshot is an immutable copy of the store handed to subscribers
type Snapshot struct {
	Filters   Filters
	Floats    []models.Float
	Profiles  []models.Profile
	Errors    []error
	IsLoading bool
	ShowMap   bool
}

type Listener func(Snapshot)

// Store is the application state shared by every view
type Store struct {
	fetcher argo.DataFetcher

	mu        sync.RWMutex
	filters   Filters
	floats    []models.Float
	profiles  []models.Profile
	errors    []error
	isLoading bool
	showMap   bool

	listenersMu sync.Mutex
	listeners   map[int]Listener
	nextID      int
}

func NewStore(fetcher argo.DataFetcher) *Store {
	return &Store{
		fetcher:   fetcher,
		floats:    []models.Float{},
		profiles:  []models.Profile{},
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers l for every subsequent change and returns a function that removes it
func (s *Store) Subscribe(l Listener) func() {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l

	return func() {
		s.listenersMu.Lock()
		defer s.listenersMu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	f := s.filters
	f.Parameters = slices.Clone(f.Parameters)
	return Snapshot{
		Filters:   f,
		Floats:    slices.Clone(s.floats),
		Profiles:  slices.Clone(s.profiles),
		Errors:    slices.Clone(s.errors),
		IsLoading: s.isLoading,
		ShowMap:   s.showMap,
	}
}

// update applies fn under the write lock and then notifies listeners outside of it
func (s *Store) update(fn func()) {
	s.mu.Lock()
	fn()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.listenersMu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		listeners = append(listeners, s.listeners[id])
	}
	s.listenersMu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}

func (s *Store) SetDataset(dataset models.Dataset) {
	s.update(func() { s.filters.Dataset = dataset })
}

func (s *Store) SetRegion(region models.Region) {
	s.update(func() { s.filters.Region = region })
}

func (s *Store) SetStartDate(date string) {
	s.update(func() { s.filters.StartDate = date })
}

func (s *Store) SetEndDate(date string) {
	s.update(func() { s.filters.EndDate = date })
}

func (s *Store) SetParameters(parameters []string) {
	s.update(func() { s.filters.Parameters = slices.Clone(parameters) })
}

// ToggleParameter adds or removes a single parameter from the selection
func (s *Store) ToggleParameter(parameter string, enabled bool) {
	s.update(func() {
		idx := slices.Index(s.filters.Parameters, parameter)
		switch {
		case enabled && idx < 0:
			s.filters.Parameters = append(slices.Clone(s.filters.Parameters), parameter)
		case !enabled && idx >= 0:
			s.filters.Parameters = slices.Delete(slices.Clone(s.filters.Parameters), idx, idx+1)
		}
	})
}

func (s *Store) SetShowMap(show bool) {
	s.update(func() { s.showMap = show })
}

// FetchData queries every source with the current filters and replaces the
// stored floats, profiles and errors with the merged result. It returns false
// without querying when the filters are incomplete.
func (s *Store) FetchData(ctx context.Context) (bool, error) {
	filters := s.Snapshot().Filters
	if !filters.CanFetchData() {
		log.Debug().Msg("Missing required parameters for data fetch")
		return false, nil
	}

	s.update(func() { s.isLoading = true })

	log.Debug().
		Str("dataset", string(filters.Dataset)).
		Str("region", string(filters.Region)).
		Str("startDate", filters.StartDate).
		Str("endDate", filters.EndDate).
		Strs("parameters", filters.Parameters).
		Msg("Fetching ARGO data")

	result, err := s.fetcher.FetchArgoData(ctx, filters.QueryParams())
	if err != nil {
		s.update(func() { s.isLoading = false })
		return false, fmt.Errorf("fetching ARGO data: %w", err)
	}

	s.update(func() {
		s.floats = result.Floats
		s.profiles = result.Profiles
		s.errors = result.Errors
		s.isLoading = false
	})

	return true, nil
}

// Download exports the currently loaded profiles
func (s *Store) Download(ctx context.Context, saver export.Saver, format export.Format, now time.Time) (*export.Payload, string, error) {
	profiles := s.Snapshot().Profiles
	return export.Download(ctx, saver, profiles, format, now)
}
