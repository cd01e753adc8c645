package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/ElamanNis/ecoscanAI/internal/domain"
)

var scanListColumns = []string{"id", "region", "ndvi", "ndvi_category", "analysis_type", "created_at"}

func (s *store) InsertScan(ctx context.Context, scan *domain.ScanRecord) error {
	query := builder().Insert(tableScans).
		Columns("user_id", "region", "ndvi", "ndvi_category", "analysis_type", "payload").
		Values(scan.UserID, scan.Region, scan.NDVI, scan.NDVICategory, scan.AnalysisType, scan.Payload)

	if _, err := s.pool.Execx(ctx, query); err != nil {
		return fmt.Errorf("insert scan: %w", wrapErr(err))
	}

	return nil
}

func (s *store) CountScansSince(ctx context.Context, userID string, since time.Time) (int, error) {
	query := builder().Select("count(*)").
		From(tableScans).
		Where(sq.And{
			sq.Eq{"user_id": userID},
			sq.GtOrEq{"created_at": since},
		})

	var count int
	if err := s.pool.Getx(ctx, &count, query); err != nil {
		return 0, wrapErr(err)
	}

	return count, nil
}

func (s *store) ListScans(ctx context.Context, userID string, limit int) ([]*domain.ScanListItem, error) {
	query := builder().Select(scanListColumns...).
		From(tableScans).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at desc").
		Limit(uint64(limit))

	var selected []*domain.ScanListItem
	if err := s.pool.Selectx(ctx, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}
