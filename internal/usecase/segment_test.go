package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rusingacademy/ecosystem-crm/internal/entity"
	"github.com/rusingacademy/ecosystem-crm/internal/segmentation"
)

func leadSnapshot() []entity.Lead {
	return []entity.Lead{
		{ID: "l1", Email: "ana@example.com", Status: "won", LeadScore: 80},
		{ID: "l2", Email: "ben@example.com", Status: "new", LeadScore: 20},
		{ID: "l3", Email: "cleo@example.com", Status: "won", LeadScore: 55},
	}
}

func TestSegmentPreviewReturnsMatchesAndCount(t *testing.T) {
	ctx := context.Background()
	mockLeads := new(MockLeadRepository)
	mockLeads.On("List", ctx).Return(leadSnapshot(), nil)

	uc := NewSegmentUseCase(new(MockSegmentRepository), mockLeads, nil)

	out, err := uc.Preview(ctx, PreviewInput{
		Filters: []segmentation.FilterCondition{{Field: "status", Operator: segmentation.OpEquals, Value: "won"}},
		Logic:   segmentation.LogicAnd,
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, "l1", out.Leads[0].ID)
	assert.Equal(t, "l3", out.Leads[1].ID)
}

func TestSegmentPreviewFailsWhenLeadsUnavailable(t *testing.T) {
	ctx := context.Background()
	mockLeads := new(MockLeadRepository)
	mockLeads.On("List", ctx).Return(nil, errors.New("db down"))

	uc := NewSegmentUseCase(new(MockSegmentRepository), mockLeads, nil)

	_, err := uc.Preview(ctx, PreviewInput{
		Filters: []segmentation.FilterCondition{{Field: "status", Operator: segmentation.OpEquals, Value: "won"}},
		Logic:   segmentation.LogicAnd,
	})

	assert.True(t, IsTechnicalError(err))
}

func TestSegmentCreateSeedsLeadCount(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockSegmentRepository)
	mockLeads := new(MockLeadRepository)
	mockLeads.On("List", ctx).Return(leadSnapshot(), nil)
	mockRepo.On("Create", ctx, mock.Anything).Return(nil)

	uc := NewSegmentUseCase(mockRepo, mockLeads, nil)

	seg, err := uc.Create(ctx, SegmentInput{
		Name:        "Hot deals",
		Filters:     []segmentation.FilterCondition{{Field: "status", Operator: segmentation.OpEquals, Value: "won"}},
		FilterLogic: segmentation.LogicAnd,
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, seg.ID)
	assert.True(t, seg.IsActive)
	assert.Equal(t, 2, seg.LeadCount)
	mockRepo.AssertCalled(t, "Create", ctx, mock.Anything)
}

func TestSegmentCreateRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	uc := NewSegmentUseCase(new(MockSegmentRepository), new(MockLeadRepository), nil)

	_, err := uc.Create(ctx, SegmentInput{Name: "", FilterLogic: segmentation.LogicAnd})
	assert.True(t, IsValidationError(err))

	_, err = uc.Create(ctx, SegmentInput{Name: "No rules", FilterLogic: segmentation.LogicAnd})
	assert.True(t, IsValidationError(err))

	// Incomplete conditions do not count towards the minimum.
	_, err = uc.Create(ctx, SegmentInput{
		Name:        "Half a rule",
		FilterLogic: segmentation.LogicOr,
		Filters:     []segmentation.FilterCondition{{Field: "status", Operator: segmentation.OpEquals}},
	})
	assert.True(t, IsValidationError(err))
}

func TestSegmentUpdateInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	existing := segmentation.NewSegment("Old name", "", []segmentation.FilterCondition{
		{Field: "status", Operator: segmentation.OpEquals, Value: "won"},
	}, segmentation.LogicAnd, "", "")

	mockRepo := new(MockSegmentRepository)
	mockCache := new(MockSegmentCountCache)
	mockRepo.On("FindByID", ctx, existing.ID).Return(existing, nil)
	mockRepo.On("Update", ctx, mock.Anything).Return(nil)
	mockCache.On("Invalidate", ctx, existing.ID).Return(nil)

	uc := NewSegmentUseCase(mockRepo, new(MockLeadRepository), mockCache)

	newName := "New name"
	seg, err := uc.Update(ctx, existing.ID, SegmentPatch{Name: &newName})

	assert.NoError(t, err)
	assert.Equal(t, "New name", seg.Name)
	mockCache.AssertCalled(t, "Invalidate", ctx, existing.ID)
}

func TestSegmentUpdateUnknownIDIsNotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockSegmentRepository)
	mockRepo.On("FindByID", ctx, "missing").Return(nil, nil)

	uc := NewSegmentUseCase(mockRepo, new(MockLeadRepository), nil)

	name := "x"
	_, err := uc.Update(ctx, "missing", SegmentPatch{Name: &name})

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeNotFound, domainErr.Code)
}

func TestSegmentRecountPersistsAndCaches(t *testing.T) {
	ctx := context.Background()
	seg := segmentation.NewSegment("Winners", "", []segmentation.FilterCondition{
		{Field: "status", Operator: segmentation.OpEquals, Value: "won"},
	}, segmentation.LogicAnd, "", "")

	mockRepo := new(MockSegmentRepository)
	mockLeads := new(MockLeadRepository)
	mockCache := new(MockSegmentCountCache)
	mockRepo.On("FindByID", ctx, seg.ID).Return(seg, nil)
	mockLeads.On("List", ctx).Return(leadSnapshot(), nil)
	mockRepo.On("UpdateLeadCount", ctx, seg.ID, 2).Return(nil)
	mockCache.On("SetCount", ctx, seg.ID, 2).Return(nil)

	uc := NewSegmentUseCase(mockRepo, mockLeads, mockCache)

	count, err := uc.Recount(ctx, seg.ID)

	assert.NoError(t, err)
	assert.Equal(t, 2, count)
	mockRepo.AssertCalled(t, "UpdateLeadCount", ctx, seg.ID, 2)
	mockCache.AssertCalled(t, "SetCount", ctx, seg.ID, 2)
}

func TestSegmentCachedCountServesHitWithoutRecount(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockSegmentRepository)
	mockCache := new(MockSegmentCountCache)
	mockCache.On("GetCount", ctx, "seg-1").Return(42, true, nil)

	uc := NewSegmentUseCase(mockRepo, new(MockLeadRepository), mockCache)

	count, err := uc.CachedCount(ctx, "seg-1")

	assert.NoError(t, err)
	assert.Equal(t, 42, count)
	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestSegmentCachedCountFallsBackOnMiss(t *testing.T) {
	ctx := context.Background()
	seg := segmentation.NewSegment("Winners", "", []segmentation.FilterCondition{
		{Field: "status", Operator: segmentation.OpEquals, Value: "won"},
	}, segmentation.LogicAnd, "", "")

	mockRepo := new(MockSegmentRepository)
	mockLeads := new(MockLeadRepository)
	mockCache := new(MockSegmentCountCache)
	mockCache.On("GetCount", ctx, seg.ID).Return(0, false, nil)
	mockRepo.On("FindByID", ctx, seg.ID).Return(seg, nil)
	mockLeads.On("List", ctx).Return(leadSnapshot(), nil)
	mockRepo.On("UpdateLeadCount", ctx, seg.ID, 2).Return(nil)
	mockCache.On("SetCount", ctx, seg.ID, 2).Return(nil)

	uc := NewSegmentUseCase(mockRepo, mockLeads, mockCache)

	count, err := uc.CachedCount(ctx, seg.ID)

	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSegmentDeleteUnknownIDIsNotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockSegmentRepository)
	mockRepo.On("FindByID", ctx, "missing").Return(nil, nil)

	uc := NewSegmentUseCase(mockRepo, new(MockLeadRepository), nil)

	err := uc.Delete(ctx, "missing")

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeNotFound, domainErr.Code)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
