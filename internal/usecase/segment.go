package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/rusingacademy/ecosystem-crm/internal/entity"
	"github.com/rusingacademy/ecosystem-crm/internal/segmentation"
)

// SegmentUseCase covers the segments surface: CRUD, live preview and member
// recounts. Preview and recount always pull a fresh lead snapshot and run the
// matcher over it; only the recount result is persisted and cached.
type SegmentUseCase struct {
	Segments SegmentRepositoryInterface
	Leads    entity.LeadRepositoryInterface
	Cache    SegmentCountCache
}

func NewSegmentUseCase(segments SegmentRepositoryInterface, leads entity.LeadRepositoryInterface, cache SegmentCountCache) *SegmentUseCase {
	return &SegmentUseCase{Segments: segments, Leads: leads, Cache: cache}
}

func (uc *SegmentUseCase) List(ctx context.Context) ([]segmentation.Segment, error) {
	return uc.Segments.List(ctx)
}

func (uc *SegmentUseCase) Preview(ctx context.Context, input PreviewInput) (*PreviewOutput, error) {
	leads, err := uc.Leads.List(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: "LEAD_FETCH", Message: fmt.Sprintf("failed to load leads: %v", err)}
	}

	matched := segmentation.MatchingLeads(leads, input.Filters, input.Logic)
	return &PreviewOutput{Leads: matched, Count: len(matched)}, nil
}

func (uc *SegmentUseCase) Create(ctx context.Context, input SegmentInput) (*segmentation.Segment, error) {
	if errs := ValidateSegmentInput(input); len(errs) > 0 {
		return nil, errs
	}

	seg := segmentation.NewSegment(input.Name, input.Description, input.Filters, input.FilterLogic, input.Color, input.CreatedBy)

	// Seed the derived count so the list page is right before the first
	// explicit recount.
	if leads, err := uc.Leads.List(ctx); err == nil {
		seg.LeadCount = segmentation.CountMatching(leads, seg.Filters, seg.FilterLogic)
	} else {
		log.Printf("⚠️ [SEGMENTS] could not seed lead count: %v", err)
	}

	if err := uc.Segments.Create(ctx, seg); err != nil {
		return nil, &TechnicalError{Code: "SEGMENT_CREATE", Message: err.Error()}
	}
	return seg, nil
}

func (uc *SegmentUseCase) Update(ctx context.Context, id string, patch SegmentPatch) (*segmentation.Segment, error) {
	seg, err := uc.Segments.FindByID(ctx, id)
	if err != nil {
		return nil, &TechnicalError{Code: "SEGMENT_FETCH", Message: err.Error()}
	}
	if seg == nil {
		return nil, NotFound("segment", id)
	}

	if patch.Name != nil {
		seg.Name = *patch.Name
	}
	if patch.Description != nil {
		seg.Description = *patch.Description
	}
	if patch.Filters != nil {
		seg.Filters = *patch.Filters
	}
	if patch.FilterLogic != nil {
		seg.FilterLogic = *patch.FilterLogic
	}
	if patch.Color != nil {
		seg.Color = *patch.Color
	}
	if patch.IsActive != nil {
		seg.IsActive = *patch.IsActive
	}

	if errs := ValidateSegmentInput(SegmentInput{
		Name:        seg.Name,
		Filters:     seg.Filters,
		FilterLogic: seg.FilterLogic,
	}); len(errs) > 0 {
		return nil, errs
	}

	if err := uc.Segments.Update(ctx, seg); err != nil {
		return nil, &TechnicalError{Code: "SEGMENT_UPDATE", Message: err.Error()}
	}

	// The rules may have changed, the cached count is stale either way.
	if uc.Cache != nil {
		if err := uc.Cache.Invalidate(ctx, seg.ID); err != nil {
			log.Printf("⚠️ [SEGMENTS] cache invalidate failed for %s: %v", seg.ID, err)
		}
	}
	return seg, nil
}

func (uc *SegmentUseCase) Delete(ctx context.Context, id string) error {
	seg, err := uc.Segments.FindByID(ctx, id)
	if err != nil {
		return &TechnicalError{Code: "SEGMENT_FETCH", Message: err.Error()}
	}
	if seg == nil {
		return NotFound("segment", id)
	}
	if err := uc.Segments.Delete(ctx, id); err != nil {
		return &TechnicalError{Code: "SEGMENT_DELETE", Message: err.Error()}
	}
	if uc.Cache != nil {
		uc.Cache.Invalidate(ctx, id)
	}
	return nil
}

// Recount recomputes a segment's member count against the current lead base,
// persists it and refreshes the cache.
func (uc *SegmentUseCase) Recount(ctx context.Context, id string) (int, error) {
	seg, err := uc.Segments.FindByID(ctx, id)
	if err != nil {
		return 0, &TechnicalError{Code: "SEGMENT_FETCH", Message: err.Error()}
	}
	if seg == nil {
		return 0, NotFound("segment", id)
	}

	leads, err := uc.Leads.List(ctx)
	if err != nil {
		return 0, &TechnicalError{Code: "LEAD_FETCH", Message: err.Error()}
	}

	count := segmentation.CountMatching(leads, seg.Filters, seg.FilterLogic)
	if err := uc.Segments.UpdateLeadCount(ctx, id, count); err != nil {
		return 0, &TechnicalError{Code: "SEGMENT_UPDATE", Message: err.Error()}
	}
	if uc.Cache != nil {
		if err := uc.Cache.SetCount(ctx, id, count); err != nil {
			log.Printf("⚠️ [SEGMENTS] cache write failed for %s: %v", id, err)
		}
	}
	return count, nil
}

// CachedCount serves the last recount from cache, falling back to a fresh
// recount on a miss.
func (uc *SegmentUseCase) CachedCount(ctx context.Context, id string) (int, error) {
	if uc.Cache != nil {
		if count, ok, err := uc.Cache.GetCount(ctx, id); err == nil && ok {
			return count, nil
		}
	}
	return uc.Recount(ctx, id)
}
