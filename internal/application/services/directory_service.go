package services

import (
	"fmt"

	"github.com/PixelcraftStudio/pixelcraft-go/internal/domain/entities/content"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/observability/logging"
	persistence "github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/content"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/security"
)

// DirectoryService manages the non-article directory collections. Every
// collection follows the same cycle: list by position, create at the next
// position, patch named fields, delete, and reorder by id list.
type DirectoryService struct {
	tagRepo        *persistence.TagRepository
	partnerRepo    *persistence.PartnerRepository
	teamRepo       *persistence.TeamRepository
	serviceRepo    *persistence.ServiceRepository
	technologyRepo *persistence.TechnologyRepository
	faqRepo        *persistence.FAQRepository
	logger         *logging.ChanneledLogger
}

// NewDirectoryService creates a new directory service over the collection
// repositories.
func NewDirectoryService(
	tagRepo *persistence.TagRepository,
	partnerRepo *persistence.PartnerRepository,
	teamRepo *persistence.TeamRepository,
	serviceRepo *persistence.ServiceRepository,
	technologyRepo *persistence.TechnologyRepository,
	faqRepo *persistence.FAQRepository,
	logger *logging.ChanneledLogger,
) *DirectoryService {
	return &DirectoryService{
		tagRepo:        tagRepo,
		partnerRepo:    partnerRepo,
		teamRepo:       teamRepo,
		serviceRepo:    serviceRepo,
		technologyRepo: technologyRepo,
		faqRepo:        faqRepo,
		logger:         logger,
	}
}

// Tags

func (s *DirectoryService) ListTags() ([]*content.Tag, error) {
	tags, err := s.tagRepo.FindAll()
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []*content.Tag{}
	}
	return tags, nil
}

func (s *DirectoryService) CreateTag(tag *content.Tag) (*content.Tag, error) {
	if tag.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	tag.ID = security.GenerateULID()
	if err := s.tagRepo.Store(tag); err != nil {
		return nil, err
	}
	s.logger.Content().Info("Created tag", "id", tag.ID, "name", tag.Name)
	return tag, nil
}

func (s *DirectoryService) UpdateTag(id string, fields map[string]any) error {
	return s.tagRepo.Update(id, fields)
}

func (s *DirectoryService) DeleteTag(id string) error {
	return s.tagRepo.Delete(id)
}

func (s *DirectoryService) ReorderTags(orderedIDs []string) error {
	return s.tagRepo.Reorder(orderedIDs)
}

// Partners

func (s *DirectoryService) ListPartners() ([]*content.Partner, error) {
	partners, err := s.partnerRepo.FindAll()
	if err != nil {
		return nil, err
	}
	if partners == nil {
		partners = []*content.Partner{}
	}
	return partners, nil
}

func (s *DirectoryService) CreatePartner(partner *content.Partner) (*content.Partner, error) {
	if partner.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	partner.ID = security.GenerateULID()
	if err := s.partnerRepo.Store(partner); err != nil {
		return nil, err
	}
	s.logger.Content().Info("Created partner", "id", partner.ID, "name", partner.Name)
	return partner, nil
}

func (s *DirectoryService) UpdatePartner(id string, fields map[string]any) error {
	return s.partnerRepo.Update(id, fields)
}

func (s *DirectoryService) DeletePartner(id string) error {
	return s.partnerRepo.Delete(id)
}

func (s *DirectoryService) ReorderPartners(orderedIDs []string) error {
	return s.partnerRepo.Reorder(orderedIDs)
}

// Team members

func (s *DirectoryService) ListTeamMembers() ([]*content.TeamMember, error) {
	members, err := s.teamRepo.FindAll()
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []*content.TeamMember{}
	}
	return members, nil
}

func (s *DirectoryService) CreateTeamMember(member *content.TeamMember) (*content.TeamMember, error) {
	if member.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	member.ID = security.GenerateULID()
	if err := s.teamRepo.Store(member); err != nil {
		return nil, err
	}
	s.logger.Content().Info("Created team member", "id", member.ID, "name", member.Name)
	return member, nil
}

func (s *DirectoryService) UpdateTeamMember(id string, fields map[string]any) error {
	return s.teamRepo.Update(id, fields)
}

func (s *DirectoryService) DeleteTeamMember(id string) error {
	return s.teamRepo.Delete(id)
}

func (s *DirectoryService) ReorderTeamMembers(orderedIDs []string) error {
	return s.teamRepo.Reorder(orderedIDs)
}

// Services

func (s *DirectoryService) ListServices() ([]*content.Service, error) {
	services, err := s.serviceRepo.FindAll()
	if err != nil {
		return nil, err
	}
	if services == nil {
		services = []*content.Service{}
	}
	return services, nil
}

func (s *DirectoryService) CreateService(service *content.Service) (*content.Service, error) {
	if service.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	service.ID = security.GenerateULID()
	if err := s.serviceRepo.Store(service); err != nil {
		return nil, err
	}
	s.logger.Content().Info("Created service", "id", service.ID, "title", service.Title)
	return service, nil
}

func (s *DirectoryService) UpdateService(id string, fields map[string]any) error {
	return s.serviceRepo.Update(id, fields)
}

func (s *DirectoryService) DeleteService(id string) error {
	return s.serviceRepo.Delete(id)
}

func (s *DirectoryService) ReorderServices(orderedIDs []string) error {
	return s.serviceRepo.Reorder(orderedIDs)
}

// Technologies

func (s *DirectoryService) ListTechnologies() ([]*content.Technology, error) {
	technologies, err := s.technologyRepo.FindAll()
	if err != nil {
		return nil, err
	}
	if technologies == nil {
		technologies = []*content.Technology{}
	}
	return technologies, nil
}

func (s *DirectoryService) CreateTechnology(technology *content.Technology) (*content.Technology, error) {
	if technology.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	technology.ID = security.GenerateULID()
	if err := s.technologyRepo.Store(technology); err != nil {
		return nil, err
	}
	s.logger.Content().Info("Created technology", "id", technology.ID, "name", technology.Name)
	return technology, nil
}

func (s *DirectoryService) UpdateTechnology(id string, fields map[string]any) error {
	return s.technologyRepo.Update(id, fields)
}

func (s *DirectoryService) DeleteTechnology(id string) error {
	return s.technologyRepo.Delete(id)
}

func (s *DirectoryService) ReorderTechnologies(orderedIDs []string) error {
	return s.technologyRepo.Reorder(orderedIDs)
}

// FAQs

func (s *DirectoryService) ListFAQs() ([]*content.FAQ, error) {
	faqs, err := s.faqRepo.FindAll()
	if err != nil {
		return nil, err
	}
	if faqs == nil {
		faqs = []*content.FAQ{}
	}
	return faqs, nil
}

func (s *DirectoryService) CreateFAQ(faq *content.FAQ) (*content.FAQ, error) {
	if faq.Question == "" {
		return nil, fmt.Errorf("question is required")
	}
	faq.ID = security.GenerateULID()
	if err := s.faqRepo.Store(faq); err != nil {
		return nil, err
	}
	s.logger.Content().Info("Created faq", "id", faq.ID)
	return faq, nil
}

func (s *DirectoryService) UpdateFAQ(id string, fields map[string]any) error {
	return s.faqRepo.Update(id, fields)
}

func (s *DirectoryService) DeleteFAQ(id string) error {
	return s.faqRepo.Delete(id)
}

func (s *DirectoryService) ReorderFAQs(orderedIDs []string) error {
	return s.faqRepo.Reorder(orderedIDs)
}
