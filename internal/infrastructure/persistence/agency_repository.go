package persistence

import (
	"context"
	"errors"

	"github.com/fieldsales/backend/internal/domain/partner"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/fieldsales/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAgencyRepository implements AgencyRepository using GORM
type GormAgencyRepository struct {
	db *gorm.DB
}

// NewGormAgencyRepository creates a new GormAgencyRepository
func NewGormAgencyRepository(db *gorm.DB) *GormAgencyRepository {
	return &GormAgencyRepository{db: db}
}

// FindByID finds an agency by its ID
func (r *GormAgencyRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Agency, error) {
	var model models.AgencyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds an agency by its unique code
func (r *GormAgencyRepository) FindByCode(ctx context.Context, code string) (*partner.Agency, error) {
	var model models.AgencyModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all agencies with filtering
func (r *GormAgencyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Agency, error) {
	query := r.db.WithContext(ctx).Model(&models.AgencyModel{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", pattern, pattern)
	}
	if active, ok := filter.Filters["active"]; ok {
		query = query.Where("active = ?", active)
	}

	query = applyPagination(applySort(query, filter, CommonSortFields), filter)

	var rows []models.AgencyModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	agencies := make([]partner.Agency, len(rows))
	for i := range rows {
		agencies[i] = *rows[i].ToDomain()
	}
	return agencies, nil
}

// Save creates or updates an agency
func (r *GormAgencyRepository) Save(ctx context.Context, agency *partner.Agency) error {
	model := models.AgencyModelFromDomain(agency)
	return r.db.WithContext(ctx).Save(model).Error
}

var _ partner.AgencyRepository = (*GormAgencyRepository)(nil)
