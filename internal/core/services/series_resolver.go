package services

import (
	"context"

	"github.com/gracebase/steward/internal/apperrors"
	"github.com/gracebase/steward/internal/core/domain"
	portsrepo "github.com/gracebase/steward/internal/core/ports/repositories"
)

// resolveSeriesTargets expands a review target into the full id set the
// transition must touch. Single scope is just the target. Series scope walks
// to the root (the target itself or its parent) and collects the root plus
// every occurrence; it fails ErrInvalidScope for non-recurring records and
// for malformed series deeper than one level.
func resolveSeriesTargets(ctx context.Context, repo portsrepo.EventReader, target *domain.EventRequest, scope domain.ReviewScope) ([]string, error) {
	if scope != domain.ScopeAll {
		return []string{target.EventID}, nil
	}

	if !target.IsRecurring {
		return nil, apperrors.ErrInvalidScope
	}

	root := target
	if target.ParentEventID != nil {
		parent, err := repo.FindEventByID(ctx, *target.ParentEventID)
		if err != nil {
			return nil, err
		}
		if parent.ParentEventID != nil {
			return nil, apperrors.ErrInvalidScope
		}
		root = parent
	}

	children, err := repo.FindChildrenByParentID(ctx, root.EventID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(children)+1)
	ids = append(ids, root.EventID)
	for _, child := range children {
		ids = append(ids, child.EventID)
	}
	return ids, nil
}
