// File: entities/recipe.go
package entities

type Recipe struct {
	ID          string  `gorm:"type:text;primary_key" json:"id"`
	Title       string  `gorm:"not null" json:"title"`
	Description string  `gorm:"column:descText;not null" json:"description"`
	Rating      int     `gorm:"not null" json:"rating"`
	Time        int     `gorm:"column:requiredTime;not null" json:"time"` // minutes
	Cost        float64 `gorm:"not null" json:"cost"`

	Ingredients []Ingredient `gorm:"foreignKey:RecipeID" json:"-"`
	Timestamp
}

type Ingredient struct {
	ID       uint   `gorm:"primary_key;autoIncrement" json:"id"`
	Title    string `gorm:"not null" json:"title"`
	RecipeID string `gorm:"type:text;not null;index" json:"recipe_id"`
}
