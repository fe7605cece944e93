package repos

import (
	"github.com/yungbote/membership-registry/internal/data/repos/registry"
	types "github.com/yungbote/membership-registry/internal/domain/registry"
	"github.com/yungbote/membership-registry/internal/platform/logger"
	"gorm.io/gorm"
)

type DocumentRepo = registry.DocumentRepo
type PersonRepo = registry.PersonRepo

type PersonParishRepo = registry.MembershipRepo[types.PersonParish]
type PersonStructureRepo = registry.MembershipRepo[types.PersonStructure]

type DirectionRepo = registry.DirectionRepo
type MandateRepo = registry.MandateRepo

type AttachmentRepo = registry.AttachmentRepo
type ReferenceDataRepo = registry.ReferenceDataRepo
type StatusChangeRepo = registry.StatusChangeRepo

// Set is the full table repo wiring shared by the aggregates and handlers.
type Set struct {
	Documents       DocumentRepo
	Persons         PersonRepo
	PersonParish    PersonParishRepo
	PersonStructure PersonStructureRepo
	Directions      DirectionRepo
	Mandates        MandateRepo
	Attachments     AttachmentRepo
	ReferenceData   ReferenceDataRepo
	StatusChanges   StatusChangeRepo
}

func NewSet(db *gorm.DB, log *logger.Logger) Set {
	return Set{
		Documents:       registry.NewDocumentRepo(db, log),
		Persons:         registry.NewPersonRepo(db, log),
		PersonParish:    registry.NewPersonParishRepo(db, log),
		PersonStructure: registry.NewPersonStructureRepo(db, log),
		Directions:      registry.NewDirectionRepo(db, log),
		Mandates:        registry.NewMandateRepo(db, log),
		Attachments:     registry.NewAttachmentRepo(db, log),
		ReferenceData:   registry.NewReferenceDataRepo(db, log),
		StatusChanges:   registry.NewStatusChangeRepo(db, log),
	}
}
