package proposal

import (
	"errors"
	"fmt"

	"github.com/confdeck/deck-manager/internal/errdef"
	"github.com/confdeck/deck-manager/pkg/model"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{db}
}

type repository struct {
	db *gorm.DB
}

func (r repository) create(proposal *model.Proposal) error {
	uniqueSlug, err := r.uniqueSlug(proposal.EventID, proposal.Title, 0)
	if err != nil {
		return err
	}
	proposal.Slug = uniqueSlug

	err = r.db.Create(&proposal).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errdef.NewDuplicated("proposal %q already exists", proposal.Title)
	}
	return err
}

func (r repository) save(proposal *model.Proposal) error {
	uniqueSlug, err := r.uniqueSlug(proposal.EventID, proposal.Title, proposal.ID)
	if err != nil {
		return err
	}
	proposal.Slug = uniqueSlug

	err = r.db.Save(&proposal).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errdef.NewDuplicated("proposal %q already exists", proposal.Title)
	}
	return err
}

func (r repository) findBySlug(eventID uint, proposalSlug string) (*model.Proposal, error) {
	var p *model.Proposal
	err := r.db.
		Preload("Event").
		Where("event_id = ? AND slug = ?", eventID, proposalSlug).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("proposal not found by slug: %q", proposalSlug)
	}
	return p, err
}

func (r repository) findPublishedByEvent(eventID uint) ([]model.Proposal, error) {
	var proposals []model.Proposal
	err := r.db.
		Where("event_id = ? AND is_published = ?", eventID, true).
		Order("created_at DESC").
		Find(&proposals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find published proposals of event %d: %v", eventID, err)
	}
	return proposals, nil
}

func (r repository) findAllByEvent(eventID uint) ([]model.Proposal, error) {
	var proposals []model.Proposal
	err := r.db.
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&proposals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find proposals of event %d: %v", eventID, err)
	}
	return proposals, nil
}

func (r repository) countVotes(proposalID uint) (int64, error) {
	var count int64
	err := r.db.
		Model(&model.Vote{}).
		Where("proposal_id = ?", proposalID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count votes of proposal %d: %v", proposalID, err)
	}
	return count, nil
}

// uniqueSlug derives a URL safe identifier from the title, unique within the
// owning event.
func (r repository) uniqueSlug(eventID uint, title string, excludeID uint) (string, error) {
	base := slug.Make(title)
	candidate := base
	for i := 2; ; i++ {
		query := r.db.Model(&model.Proposal{}).Where("event_id = ? AND slug = ?", eventID, candidate)
		if excludeID != 0 {
			query = query.Where("id <> ?", excludeID)
		}

		var count int64
		if err := query.Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check slug %q: %v", candidate, err)
		}
		if count == 0 {
			return candidate, nil
		}

		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
