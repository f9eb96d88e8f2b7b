package partner

import (
	"context"

	"github.com/fieldsales/backend/internal/domain/partner"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LimitInvalidator drops a cached discount limit after it changes
type LimitInvalidator interface {
	Invalidate(agencyID uuid.UUID)
}

// AgencyService manages agencies and their discount approval limits
type AgencyService struct {
	agencyRepo  partner.AgencyRepository
	invalidator LimitInvalidator
}

// NewAgencyService creates a new AgencyService. invalidator may be nil when
// no discount limit cache is in front of the repository.
func NewAgencyService(agencyRepo partner.AgencyRepository, invalidator LimitInvalidator) *AgencyService {
	return &AgencyService{
		agencyRepo:  agencyRepo,
		invalidator: invalidator,
	}
}

// Create registers a new agency. Agency codes are unique across the system.
func (s *AgencyService) Create(ctx context.Context, req CreateAgencyRequest) (*AgencyResponse, error) {
	if existing, err := s.agencyRepo.FindByCode(ctx, req.Code); err == nil && existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	agency, err := partner.NewAgency(req.Name, req.Code)
	if err != nil {
		return nil, err
	}

	if err := s.agencyRepo.Save(ctx, agency); err != nil {
		return nil, err
	}

	response := ToAgencyResponse(agency)
	return &response, nil
}

// GetByID retrieves an agency
func (s *AgencyService) GetByID(ctx context.Context, agencyID uuid.UUID) (*AgencyResponse, error) {
	agency, err := s.agencyRepo.FindByID(ctx, agencyID)
	if err != nil {
		return nil, err
	}
	response := ToAgencyResponse(agency)
	return &response, nil
}

// List retrieves agencies with pagination
func (s *AgencyService) List(ctx context.Context, page, pageSize int) ([]AgencyResponse, error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}

	agencies, err := s.agencyRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]AgencyResponse, len(agencies))
	for i := range agencies {
		responses[i] = ToAgencyResponse(&agencies[i])
	}
	return responses, nil
}

// SetDiscountLimit configures or clears the agency's discount approval
// ceiling and invalidates any cached copy of it.
func (s *AgencyService) SetDiscountLimit(ctx context.Context, agencyID uuid.UUID, req SetDiscountLimitRequest) (*AgencyResponse, error) {
	agency, err := s.agencyRepo.FindByID(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	if req.LimitPercent == nil {
		agency.ClearDiscountLimit()
	} else if err := agency.SetDiscountLimit(*req.LimitPercent); err != nil {
		return nil, err
	}

	if err := s.agencyRepo.Save(ctx, agency); err != nil {
		return nil, err
	}

	if s.invalidator != nil {
		s.invalidator.Invalidate(agencyID)
	}

	response := ToAgencyResponse(agency)
	return &response, nil
}

// Deactivate marks an agency inactive. Users of an inactive agency can no
// longer log in.
func (s *AgencyService) Deactivate(ctx context.Context, agencyID uuid.UUID) (*AgencyResponse, error) {
	agency, err := s.agencyRepo.FindByID(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	agency.Deactivate()

	if err := s.agencyRepo.Save(ctx, agency); err != nil {
		return nil, err
	}

	response := ToAgencyResponse(agency)
	return &response, nil
}
