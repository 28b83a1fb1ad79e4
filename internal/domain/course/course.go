package course

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course is one catalog entry with its description embedding.
type Course struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"type:text;not null;column:title" json:"title"`
	Description string    `gorm:"type:text;not null;column:course_description" json:"course_description"`
	Rating      string    `gorm:"type:text;column:rating" json:"rating"`
	Duration    string    `gorm:"type:text;column:duration" json:"duration"`
	Difficulty  string    `gorm:"type:text;column:difficulty" json:"difficulty"`
	CourseURL   string    `gorm:"type:text;column:course_url;index" json:"course_url"`
	Source      string    `gorm:"type:text;column:source" json:"source"`
	Type        string    `gorm:"type:text;column:type" json:"type"`

	// Embedding is a JSON array of floats.
	Embedding datatypes.JSON `gorm:"column:embedding" json:"-"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Course) TableName() string { return "course" }

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *Course) SetEmbedding(vec []float32) error {
	raw, err := json.Marshal(vec)
	if err != nil {
		return err
	}
	c.Embedding = datatypes.JSON(raw)
	return nil
}

func (c *Course) EmbeddingVector() ([]float32, error) {
	if len(c.Embedding) == 0 {
		return nil, nil
	}
	var vec []float32
	if err := json.Unmarshal(c.Embedding, &vec); err != nil {
		return nil, err
	}
	return vec, nil
}
