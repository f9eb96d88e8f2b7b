package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/fieldsales/backend/internal/domain/pricing"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/fieldsales/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDiscountRuleRepository implements DiscountRuleRepository using GORM
type GormDiscountRuleRepository struct {
	db *gorm.DB
}

// NewGormDiscountRuleRepository creates a new GormDiscountRuleRepository
func NewGormDiscountRuleRepository(db *gorm.DB) *GormDiscountRuleRepository {
	return &GormDiscountRuleRepository{db: db}
}

// FindByID finds a discount rule by its ID
func (r *GormDiscountRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.DiscountRule, error) {
	var model models.DiscountRuleModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForAgency finds a discount rule by ID within an agency
func (r *GormDiscountRuleRepository) FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*pricing.DiscountRule, error) {
	var model models.DiscountRuleModel
	if err := r.db.WithContext(ctx).
		Where("agency_id = ? AND id = ?", agencyID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForAgency finds all discount rules for an agency with filtering
func (r *GormDiscountRuleRepository) FindAllForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) ([]pricing.DiscountRule, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.DiscountRuleModel{}).Where("agency_id = ?", agencyID),
		filter,
	)

	var rows []models.DiscountRuleModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	rules := make([]pricing.DiscountRule, len(rows))
	for i := range rows {
		rules[i] = *rows[i].ToDomain()
	}
	return rules, nil
}

// FindApplicable returns active rules whose validity window covers the given
// time, for the GLOBAL scope plus any of the provided scope refs.
func (r *GormDiscountRuleRepository) FindApplicable(ctx context.Context, agencyID uuid.UUID, at time.Time, scopeRefs []uuid.UUID) ([]pricing.DiscountRule, error) {
	query := r.db.WithContext(ctx).Model(&models.DiscountRuleModel{}).
		Where("agency_id = ? AND active = ? AND valid_from <= ? AND valid_to >= ?", agencyID, true, at, at)

	if len(scopeRefs) > 0 {
		query = query.Where("scope = ? OR scope_ref IN ?", pricing.RuleScopeGlobal, scopeRefs)
	} else {
		query = query.Where("scope = ?", pricing.RuleScopeGlobal)
	}

	var rows []models.DiscountRuleModel
	if err := query.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	rules := make([]pricing.DiscountRule, len(rows))
	for i := range rows {
		rules[i] = *rows[i].ToDomain()
	}
	return rules, nil
}

// Save creates or updates a discount rule
func (r *GormDiscountRuleRepository) Save(ctx context.Context, rule *pricing.DiscountRule) error {
	model := models.DiscountRuleModelFromDomain(rule)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormDiscountRuleRepository) SaveWithLock(ctx context.Context, rule *pricing.DiscountRule) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current struct{ Version int }
		if err := tx.Model(&models.DiscountRuleModel{}).
			Where("id = ?", rule.ID).
			Select("version").
			Take(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if current.Version != rule.Version {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The discount rule has been modified by another user")
		}

		rule.Version++
		rule.UpdatedAt = time.Now()

		result := tx.Model(&models.DiscountRuleModel{}).
			Where("id = ? AND version = ?", rule.ID, current.Version).
			Updates(map[string]interface{}{
				"name":                rule.Name,
				"scope":               rule.Scope,
				"scope_ref":           rule.ScopeRef,
				"kind":                rule.Kind,
				"value":               rule.Value,
				"buy_quantity":        rule.BuyQuantity,
				"get_quantity":        rule.GetQuantity,
				"valid_from":          rule.ValidFrom,
				"valid_to":            rule.ValidTo,
				"max_usage_count":     rule.MaxUsageCount,
				"current_usage_count": rule.CurrentUsageCount,
				"active":              rule.Active,
				"version":             rule.Version,
				"updated_at":          rule.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The discount rule has been modified by another user")
		}
		return nil
	})
}

// DeleteForAgency deletes a discount rule within an agency
func (r *GormDiscountRuleRepository) DeleteForAgency(ctx context.Context, agencyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("agency_id = ? AND id = ?", agencyID, id).
		Delete(&models.DiscountRuleModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForAgency counts an agency's discount rules matching the filter
func (r *GormDiscountRuleRepository) CountForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(
		r.db.WithContext(ctx).Model(&models.DiscountRuleModel{}).Where("agency_id = ?", agencyID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormDiscountRuleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	return applyPagination(applySort(r.applySearch(query, filter), filter, DiscountRuleSortFields), filter)
}

func (r *GormDiscountRuleRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "scope":
			query = query.Where("scope = ?", value)
		case "scope_ref":
			query = query.Where("scope_ref = ?", value)
		case "kind":
			query = query.Where("kind = ?", value)
		case "active":
			query = query.Where("active = ?", value)
		}
	}

	return query
}

var _ pricing.DiscountRuleRepository = (*GormDiscountRuleRepository)(nil)
