package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"isuride/backend/services/owner-service/internal/distance"
	"isuride/backend/services/owner-service/internal/models"
	"isuride/backend/services/owner-service/internal/repository"
)

var (
	// ErrStorageUnavailable wraps any failure to read chairs or pings.
	ErrStorageUnavailable = errors.New("chairs: storage query failed")
	// ErrOwnerRequired is returned when the owner id is blank.
	ErrOwnerRequired = errors.New("chairs: owner id required")
)

// Strategy selects how total distance is computed. All strategies return the same data.
type Strategy string

const (
	// StrategyScoped aggregates in SQL after narrowing pings to the owner's chairs.
	StrategyScoped Strategy = "scoped"
	// StrategyGlobal aggregates in SQL over all pings, then filters by owner.
	StrategyGlobal Strategy = "global"
	// StrategyScan fetches pings in batches and aggregates in process.
	StrategyScan Strategy = "scan"
)

const (
	defaultBatchSize   = 500
	defaultParallelism = 4
)

// ParseStrategy validates a configured strategy name. Blank means StrategyScoped.
func ParseStrategy(raw string) (Strategy, error) {
	switch s := Strategy(strings.ToLower(strings.TrimSpace(raw))); s {
	case "":
		return StrategyScoped, nil
	case StrategyScoped, StrategyGlobal, StrategyScan:
		return s, nil
	default:
		return "", fmt.Errorf("chairs: unknown distance strategy %q", raw)
	}
}

// ChairRepository defines chair reads used by the service.
type ChairRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]models.Chair, error)
	ListWithTotalDistance(ctx context.Context, ownerID string, scope repository.DistanceScope) ([]models.ChairWithDistance, error)
}

// LocationRepository defines ping reads used by the scan strategy.
type LocationRepository interface {
	ListByChairIDs(ctx context.Context, chairIDs []string) ([]models.ChairLocation, error)
}

// ChairsOptions tunes the chairs service.
type ChairsOptions struct {
	Strategy Strategy
	// BatchSize caps the number of chair ids bound into one IN clause.
	BatchSize int
	// Parallelism caps concurrent batch queries.
	Parallelism int
}

// ChairsService lists an owner's chairs with their accumulated distance.
type ChairsService struct {
	chairs    ChairRepository
	locations LocationRepository
	opts      ChairsOptions
	logger    *zap.Logger
}

// NewChairsService builds ChairsService.
func NewChairsService(chairs ChairRepository, locations LocationRepository, opts ChairsOptions, logger *zap.Logger) *ChairsService {
	if opts.Strategy == "" {
		opts.Strategy = StrategyScoped
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = defaultParallelism
	}
	return &ChairsService{
		chairs:    chairs,
		locations: locations,
		opts:      opts,
		logger:    logger,
	}
}

// ListChairsForOwner returns every chair of the owner ordered by id.
// On failure it returns an error wrapping ErrStorageUnavailable and no chairs.
func (s *ChairsService) ListChairsForOwner(ctx context.Context, ownerID string) ([]models.ChairWithDistance, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrOwnerRequired
	}

	var (
		chairs []models.ChairWithDistance
		err    error
	)
	switch s.opts.Strategy {
	case StrategyScoped:
		chairs, err = s.chairs.ListWithTotalDistance(ctx, ownerID, repository.ScopeOwnerChairs)
	case StrategyGlobal:
		chairs, err = s.chairs.ListWithTotalDistance(ctx, ownerID, repository.ScopeAllChairs)
	case StrategyScan:
		chairs, err = s.scan(ctx, ownerID)
	default:
		return nil, fmt.Errorf("chairs: unknown distance strategy %q", s.opts.Strategy)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	sort.SliceStable(chairs, func(i, j int) bool { return chairs[i].ID < chairs[j].ID })

	s.logger.Debug("listed owner chairs",
		zap.String("owner_id", ownerID),
		zap.String("strategy", string(s.opts.Strategy)),
		zap.Int("count", len(chairs)),
	)
	return chairs, nil
}

func (s *ChairsService) scan(ctx context.Context, ownerID string) ([]models.ChairWithDistance, error) {
	chairs, err := s.chairs.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(chairs))
	seen := make(map[string]struct{}, len(chairs))
	for _, c := range chairs {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		ids = append(ids, c.ID)
	}

	pings, err := s.fetchPings(ctx, ids)
	if err != nil {
		return nil, err
	}
	totals := distance.Accumulate(pings)

	result := make([]models.ChairWithDistance, 0, len(chairs))
	for _, c := range chairs {
		item := models.ChairWithDistance{Chair: c}
		if total, ok := totals[c.ID]; ok {
			item.TotalDistance = total.Distance
			if total.HasUpdate() {
				item.TotalDistanceUpdatedAt = sql.NullTime{Time: total.UpdatedAt, Valid: true}
			}
		}
		result = append(result, item)
	}
	return result, nil
}

// fetchPings loads pings in id batches. Any failed batch cancels the others.
func (s *ChairsService) fetchPings(ctx context.Context, ids []string) ([]models.ChairLocation, error) {
	batches := chunk(ids, s.opts.BatchSize)
	results := make([][]models.ChairLocation, len(batches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Parallelism)
	for i, batch := range batches {
		g.Go(func() error {
			pings, err := s.locations.ListByChairIDs(gctx, batch)
			if err != nil {
				return err
			}
			results[i] = pings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total int
	for _, r := range results {
		total += len(r)
	}
	pings := make([]models.ChairLocation, 0, total)
	for _, r := range results {
		pings = append(pings, r...)
	}
	return pings, nil
}

func chunk(ids []string, size int) [][]string {
	var batches [][]string
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		batches = append(batches, ids[start:end])
	}
	return batches
}
