// Package course is the read-only course catalog the shop sells from.
package course

import "github.com/irsalhamdi/learnhub/core/item"

const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

type Course struct {
	ID            item.ID    `json:"id" db:"course_id"`
	Title         string     `json:"title" db:"title"`
	Description   string     `json:"description" db:"description"`
	Instructor    string     `json:"instructor" db:"instructor"`
	Category      string     `json:"category" db:"category"`
	Level         string     `json:"level" db:"level"`
	Price         item.Price `json:"price" db:"price"`
	Image         string     `json:"image" db:"image_url"`
	Rating        float64    `json:"rating" db:"rating"`
	Students      int        `json:"students" db:"students"`
	DurationHours float64    `json:"durationHours" db:"duration_hours"`
	Lessons       []Lesson   `json:"lessons,omitempty" db:"-"`
}

type Lesson struct {
	CourseID item.ID `json:"-" db:"course_id"`
	Index    int     `json:"index" db:"idx"`
	Title    string  `json:"title" db:"title"`
	Minutes  int     `json:"minutes" db:"minutes"`
	Free     bool    `json:"free" db:"free"`
}

// Item is the snapshot of c that goes into a cart or a wishlist.
func (c Course) Item() item.Item {
	return item.Item{
		ID:         c.ID,
		Title:      c.Title,
		Price:      c.Price,
		Image:      c.Image,
		Category:   c.Category,
		Level:      c.Level,
		Instructor: c.Instructor,
	}
}

// Free reports whether the course costs nothing.
func (c Course) Free() bool {
	return c.Price.IsZero()
}
