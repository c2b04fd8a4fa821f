// Package gorm provides GORM model definitions for the application
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// UserRecipeModel is one saved recipe row. A user's set is the rows
// sharing an owner key, ordered by position. The owner key is a
// deterministic digest of the identity-provider subject, never the raw
// subject itself.
type UserRecipeModel struct {
	RecipeID        string         `gorm:"type:char(36);primaryKey"`
	OwnerKey        string         `gorm:"type:char(64);not null;index"`
	Position        int            `gorm:"not null"`
	Name            string         `gorm:"type:varchar(255);not null"`
	Description     string         `gorm:"type:text"`
	TotalFlourGrams float64        `gorm:"not null"`
	Ingredients     IngredientList `gorm:"type:json"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName overrides the default pluralized name.
func (UserRecipeModel) TableName() string {
	return "user_recipes"
}

// IngredientRow is one ingredient line as stored in the JSON column.
type IngredientRow struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
}

// IngredientList custom type for handling the JSON ingredients column
type IngredientList []IngredientRow

// Scan implements the sql.Scanner interface
func (l *IngredientList) Scan(value interface{}) error {
	if value == nil {
		*l = IngredientList{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into IngredientList", value)
	}
}

// Value implements the driver.Valuer interface
func (l IngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}
