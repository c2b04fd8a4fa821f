package gorm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/alchemorsel/breadbook/internal/domain/recipe"
	"github.com/alchemorsel/breadbook/internal/infrastructure/monitoring"
	"github.com/alchemorsel/breadbook/internal/ports/outbound"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RecipeStore implements the RecipeStore port on a GORM database.
type RecipeStore struct {
	db      *gorm.DB
	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// NewRecipeStore creates a new GORM-backed recipe store.
func NewRecipeStore(db *gorm.DB, logger *zap.Logger, metrics *monitoring.Metrics) outbound.RecipeStore {
	return &RecipeStore{
		db:      db,
		logger:  logger.Named("recipe-store"),
		metrics: metrics,
	}
}

// ownerKey derives the storage key from the identity-provider subject.
// The raw subject never touches a column or an index.
func ownerKey(userID string) string {
	sum := sha256.Sum256([]byte(userID))
	return hex.EncodeToString(sum[:])
}

// LoadSet returns the user's recipes in saved order.
func (s *RecipeStore) LoadSet(ctx context.Context, userID string) ([]recipe.Recipe, error) {
	var rows []UserRecipeModel
	err := s.db.WithContext(ctx).
		Where("owner_key = ?", ownerKey(userID)).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		s.observe("load", "error")
		return nil, fmt.Errorf("load recipe set: %w", err)
	}

	recipes := make([]recipe.Recipe, len(rows))
	for i, row := range rows {
		recipes[i] = toDomain(row)
	}

	s.observe("load", "ok")
	return recipes, nil
}

// SaveSet replaces the user's entire recipe set in one transaction.
// Delete-then-insert keeps positions dense and makes the write
// last-write-wins without diffing against the previous set.
func (s *RecipeStore) SaveSet(ctx context.Context, userID string, recipes []recipe.Recipe) error {
	key := ownerKey(userID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_key = ?", key).Delete(&UserRecipeModel{}).Error; err != nil {
			return fmt.Errorf("clear recipe set: %w", err)
		}

		for i, r := range recipes {
			model := toModel(key, i, r)
			if err := tx.Create(&model).Error; err != nil {
				return fmt.Errorf("insert recipe %s: %w", r.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		s.observe("save", "error")
		return err
	}

	s.observe("save", "ok")
	s.logger.Debug("recipe set saved", zap.Int("recipes", len(recipes)))
	return nil
}

func (s *RecipeStore) observe(operation, status string) {
	if s.metrics != nil {
		s.metrics.ObserveStore(operation, status)
	}
}
