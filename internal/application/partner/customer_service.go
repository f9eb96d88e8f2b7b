package partner

import (
	"context"

	"github.com/fieldsales/backend/internal/domain/partner"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerService manages the customer directory of an agency
type CustomerService struct {
	customerRepo partner.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// Create registers a new customer under the agency
func (s *CustomerService) Create(ctx context.Context, agencyID uuid.UUID, actorID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(agencyID, req.Name, req.Phone, req.Address)
	if err != nil {
		return nil, err
	}
	customer.CreatedBy = &actorID

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer within the agency
func (s *CustomerService) GetByID(ctx context.Context, agencyID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForAgency(ctx, agencyID, customerID)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves the agency's customers with pagination and optional search
func (s *CustomerService) List(ctx context.Context, agencyID uuid.UUID, filter CustomerListFilter) (*shared.Paginated[CustomerResponse], error) {
	repoFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		repoFilter.PageSize = filter.PageSize
	}
	repoFilter.Search = filter.Search

	customers, err := s.customerRepo.FindAllForAgency(ctx, agencyID, repoFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.customerRepo.CountForAgency(ctx, agencyID, repoFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	result := shared.NewPaginated(responses, total, repoFilter.Page, repoFilter.PageSize)
	return &result, nil
}

// Update applies partial changes to a customer's name and contact details
func (s *CustomerService) Update(ctx context.Context, agencyID, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForAgency(ctx, agencyID, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := customer.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Phone != nil || req.Address != nil {
		phone := customer.Phone
		address := customer.Address
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Address != nil {
			address = *req.Address
		}
		customer.UpdateContact(phone, address)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Deactivate marks a customer inactive. Inactive customers keep their
// history but no longer appear in active listings.
func (s *CustomerService) Deactivate(ctx context.Context, agencyID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForAgency(ctx, agencyID, customerID)
	if err != nil {
		return nil, err
	}

	customer.Deactivate()

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}
