package event

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

func (r repository) create(event *model.Event) error {
	uniqueSlug, err := r.uniqueSlug(event.Title, 0)
	if err != nil {
		return err
	}
	event.Slug = uniqueSlug

	err = r.db.Create(&event).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errdef.NewDuplicated("event %q already exists", event.Title)
	}
	return err
}

func (r repository) save(event *model.Event) error {
	uniqueSlug, err := r.uniqueSlug(event.Title, event.ID)
	if err != nil {
		return err
	}
	event.Slug = uniqueSlug

	err = r.db.Save(&event).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errdef.NewDuplicated("event %q already exists", event.Title)
	}
	return err
}

func (r repository) findBySlug(eventSlug string) (*model.Event, error) {
	var e *model.Event
	err := r.db.
		Where("slug = ?", eventSlug).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("event not found by slug: %q", eventSlug)
	}
	return e, err
}

// findAllPublished returns published events, newest first.
func (r repository) findAllPublished() ([]model.Event, error) {
	var events []model.Event
	err := r.db.
		Where("is_published = ?", true).
		Order("created_at DESC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find published events: %v", err)
	}
	return events, nil
}

func (r repository) findByAuthor(userID uint) ([]model.Event, error) {
	var events []model.Event
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find events by author %d: %v", userID, err)
	}
	return events, nil
}

// uniqueSlug derives a URL safe identifier from the title, appending a
// numeric disambiguator until it is unique. excludeID skips the row being
// updated so an unchanged title keeps its slug.
func (r repository) uniqueSlug(title string, excludeID uint) (string, error) {
	base := slug.Make(title)
	candidate := base
	for i := 2; ; i++ {
		query := r.db.Model(&model.Event{}).Where("slug = ?", candidate)
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
