package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"cleanreports/internal/config"
	"cleanreports/internal/domain"
	"cleanreports/internal/port"
)

// Listing is a resolved dashboard page: the report rows plus the store
// options for the filter bar.
type Listing struct {
	Result *domain.ResultPage `json:"result"`
	Stores []string           `json:"stores"`
}

// ListingService resolves filter requests into pages of completed reports.
type ListingService interface {
	Resolve(ctx context.Context, req domain.FilterRequest) (*Listing, error)
	DistinctStores(ctx context.Context) ([]string, error)
	// ForEachBatch walks every report matching req's filters in listing order,
	// ignoring req.Page. It stops early when fn returns an error.
	ForEachBatch(ctx context.Context, req domain.FilterRequest, fn func([]domain.Report) error) error
	PageSize() int
}

// ListingOption configures optional collaborators of the listing service.
type ListingOption func(*listingService)

// WithStoreCache caches the distinct store enumeration.
func WithStoreCache(cache port.StoreNameCache) ListingOption {
	return func(s *listingService) { s.storeCache = cache }
}

// WithPhotoSigner resolves stored photo keys into presigned URLs.
func WithPhotoSigner(signer port.PhotoURLSigner) ListingOption {
	return func(s *listingService) { s.signer = signer }
}

type listingService struct {
	reportRepo port.ReportRepository
	cfg        config.ListingConfig
	exportCfg  config.ExportConfig
	storeCache port.StoreNameCache
	signer     port.PhotoURLSigner
}

// NewListingService creates a new ListingService.
func NewListingService(
	reportRepo port.ReportRepository,
	cfg config.ListingConfig,
	exportCfg config.ExportConfig,
	opts ...ListingOption,
) ListingService {
	s := &listingService{
		reportRepo: reportRepo,
		cfg:        cfg,
		exportCfg:  exportCfg,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// listingOrder sorts newest first; id keeps paging stable across equal dates.
var listingOrder = []domain.OrderBy{
	{Field: domain.FieldReportDate, Desc: true},
	{Field: domain.FieldID, Desc: true},
}

// BuildPredicates assembles the conjunctive filter for a normalized request.
// The completion-status predicate is always present.
func BuildPredicates(completionStatus string, req domain.FilterRequest) []domain.Predicate {
	preds := []domain.Predicate{
		{Field: domain.FieldStatus, Op: domain.OpEq, Value: completionStatus},
	}
	if store := strings.TrimSpace(req.Store); store != "" {
		preds = append(preds, domain.Predicate{Field: domain.FieldStoreNames, Op: domain.OpContains, Value: store})
	}
	if from, to, ok := domain.MonthRange(req.Month); ok {
		preds = append(preds,
			domain.Predicate{Field: domain.FieldReportDate, Op: domain.OpGte, Value: from},
			domain.Predicate{Field: domain.FieldReportDate, Op: domain.OpLt, Value: to},
		)
	}
	return preds
}

// DistinctStoreNames takes the first store of each record, drops blanks and
// returns the unique names in ascending order.
func DistinctStoreNames(fields []domain.StoreNames) []string {
	seen := make(map[string]struct{}, len(fields))
	stores := make([]string, 0, len(fields))
	for _, f := range fields {
		name := f.First()
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		stores = append(stores, name)
	}
	sort.Strings(stores)
	return stores
}

func normalize(req domain.FilterRequest) domain.FilterRequest {
	if req.Page < 1 {
		req.Page = 1
	}
	req.Store = strings.TrimSpace(req.Store)
	if m, ok := domain.NormalizeMonth(req.Month); ok {
		req.Month = m
	} else {
		req.Month = ""
	}
	return req
}

func (s *listingService) PageSize() int {
	return s.cfg.PageSize
}

func (s *listingService) Resolve(ctx context.Context, req domain.FilterRequest) (*Listing, error) {
	req = normalize(req)
	preds := BuildPredicates(s.cfg.CompletionStatus, req)
	pageSize := s.cfg.PageSize

	var (
		stores []string
		total  int
		rows   []domain.Report
	)

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		stores, err = s.DistinctStores(egCtx)
		if err != nil {
			log.WithError(err).Warn("listingService.Resolve: store enumeration failed, rendering empty store filter")
			stores = []string{}
		}
		return nil
	})

	eg.Go(func() error {
		var err error
		total, err = s.reportRepo.Count(egCtx, preds)
		return err
	})

	if !s.cfg.ClampPage {
		eg.Go(func() error {
			var err error
			rows, err = s.reportRepo.Query(egCtx, preds, listingOrder, domain.PageOffset(req.Page, pageSize), pageSize)
			return err
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("listingService.Resolve: %w", err)
	}

	totalPages := domain.TotalPages(total, pageSize)

	if s.cfg.ClampPage {
		if totalPages > 0 && req.Page > totalPages {
			req.Page = totalPages
		}
		var err error
		rows, err = s.reportRepo.Query(ctx, preds, listingOrder, domain.PageOffset(req.Page, pageSize), pageSize)
		if err != nil {
			return nil, fmt.Errorf("listingService.Resolve: %w", err)
		}
	}

	if rows == nil {
		rows = []domain.Report{}
	}
	s.signPhotos(ctx, rows)

	return &Listing{
		Result: &domain.ResultPage{
			Rows:       rows,
			TotalCount: total,
			TotalPages: totalPages,
			Page:       req.Page,
			PageSize:   pageSize,
		},
		Stores: stores,
	}, nil
}

func (s *listingService) storeCacheKey() string {
	return "stores:" + s.cfg.CompletionStatus
}

func (s *listingService) DistinctStores(ctx context.Context) ([]string, error) {
	useCache := s.storeCache != nil && s.cfg.StoreCacheTTL > 0
	if useCache {
		if stores, ok := s.storeCache.Get(ctx, s.storeCacheKey()); ok {
			return stores, nil
		}
	}

	fields, err := s.reportRepo.StoreFields(ctx, BuildPredicates(s.cfg.CompletionStatus, domain.FilterRequest{}))
	if err != nil {
		return nil, fmt.Errorf("listingService.DistinctStores: %w", err)
	}
	stores := DistinctStoreNames(fields)

	if useCache {
		s.storeCache.Set(ctx, s.storeCacheKey(), stores, s.cfg.StoreCacheTTL)
	}
	return stores, nil
}

func (s *listingService) ForEachBatch(ctx context.Context, req domain.FilterRequest, fn func([]domain.Report) error) error {
	req = normalize(req)
	preds := BuildPredicates(s.cfg.CompletionStatus, req)

	batch := s.exportCfg.BatchSize
	if batch <= 0 {
		batch = s.cfg.PageSize
	}
	maxRows := s.exportCfg.MaxRows

	for offset := 0; maxRows <= 0 || offset < maxRows; offset += batch {
		limit := batch
		if maxRows > 0 && offset+limit > maxRows {
			limit = maxRows - offset
		}

		rows, err := s.reportRepo.Query(ctx, preds, listingOrder, offset, limit)
		if err != nil {
			return fmt.Errorf("listingService.ForEachBatch: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		s.signPhotos(ctx, rows)
		if err := fn(rows); err != nil {
			return err
		}
		if len(rows) < limit {
			return nil
		}
	}
	return nil
}

// signPhotos replaces stored object keys with presigned URLs in place.
// Absolute http(s) references are left as they are.
func (s *listingService) signPhotos(ctx context.Context, rows []domain.Report) {
	if s.signer == nil {
		return
	}
	for i := range rows {
		for j, ref := range rows[i].PhotoPaths {
			if ref == "" || isAbsoluteURL(ref) {
				continue
			}
			signed, err := s.signer.GetPresignedURL(ctx, ref)
			if err != nil {
				log.WithError(err).WithField("key", ref).Warn("listingService.signPhotos: presign failed")
				continue
			}
			rows[i].PhotoPaths[j] = signed
		}
	}
}

func isAbsoluteURL(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
