package repository

import (
	"time"

	"gorm.io/gorm"

	"zenpay/internal/models"
)

// IntentRepository handles top-up intent rows.
type IntentRepository struct {
	db *gorm.DB
}

func NewIntentRepository(db *gorm.DB) *IntentRepository {
	return &IntentRepository{db: db}
}

// Create records a new pending intent.
func (r *IntentRepository) Create(intent *models.TopUpIntent) error {
	return r.db.Create(intent).Error
}

// FindByID returns an intent by its identifier.
func (r *IntentRepository) FindByID(id string) (*models.TopUpIntent, error) {
	var intent models.TopUpIntent
	if err := r.db.Where("id = ?", id).First(&intent).Error; err != nil {
		return nil, err
	}
	return &intent, nil
}

// FindByProviderID returns an intent by the provider's payment id.
func (r *IntentRepository) FindByProviderID(providerID string) (*models.TopUpIntent, error) {
	var intent models.TopUpIntent
	if err := r.db.Where("provider_id = ?", providerID).First(&intent).Error; err != nil {
		return nil, err
	}
	return &intent, nil
}

// MarkPaid settles a pending intent as paid. Already-settled intents
// are left untouched so duplicate callbacks are harmless.
func (r *IntentRepository) MarkPaid(id string) (bool, error) {
	res := r.db.Model(&models.TopUpIntent{}).
		Where("id = ? AND status = ?", id, models.IntentPending).
		Updates(map[string]interface{}{
			"status":     models.IntentPaid,
			"updated_at": time.Now(),
		})
	return res.RowsAffected > 0, res.Error
}

// MarkFailed settles a pending intent as failed.
func (r *IntentRepository) MarkFailed(id string) (bool, error) {
	res := r.db.Model(&models.TopUpIntent{}).
		Where("id = ? AND status = ?", id, models.IntentPending).
		Updates(map[string]interface{}{
			"status":     models.IntentFailed,
			"updated_at": time.Now(),
		})
	return res.RowsAffected > 0, res.Error
}

// ExpireStale marks pending intents older than ttl as expired and
// returns the number of rows touched.
func (r *IntentRepository) ExpireStale(ttl time.Duration) (int64, error) {
	cutoff := time.Now().Add(-ttl)
	res := r.db.Model(&models.TopUpIntent{}).
		Where("status = ? AND created_at < ?", models.IntentPending, cutoff).
		Updates(map[string]interface{}{
			"status":     models.IntentExpired,
			"updated_at": time.Now(),
		})
	return res.RowsAffected, res.Error
}
