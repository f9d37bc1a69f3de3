package course

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/irsalhamdi/learnhub/core/item"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

//go:embed catalog.json
var embedded []byte

const (
	SortPopular   = "popular"
	SortRating    = "rating"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortTitle     = "title"
)

func IsValidSort(s string) bool {
	switch s {
	case "", SortPopular, SortRating, SortPriceAsc, SortPriceDesc, SortTitle:
		return true
	}
	return false
}

var ErrNotFound = errors.New("course not found")

// Catalog is an immutable, ordered set of courses.
type Catalog struct {
	courses []Course
	byID    map[item.ID]int
}

func NewCatalog(courses []Course) (*Catalog, error) {
	c := &Catalog{
		courses: make([]Course, 0, len(courses)),
		byID:    make(map[item.ID]int, len(courses)),
	}
	for _, crs := range courses {
		if crs.ID.IsZero() {
			return nil, fmt.Errorf("course %q has no id", crs.Title)
		}
		if _, ok := c.byID[crs.ID]; ok {
			return nil, fmt.Errorf("duplicate course id %s", crs.ID)
		}
		c.byID[crs.ID] = len(c.courses)
		c.courses = append(c.courses, crs)
	}
	return c, nil
}

// LoadEmbedded returns the catalog shipped with the binary.
func LoadEmbedded() (*Catalog, error) {
	return decode(embedded)
}

func LoadFile(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return decode(b)
}

func decode(b []byte) (*Catalog, error) {
	var courses []Course
	if err := json.Unmarshal(b, &courses); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	return NewCatalog(courses)
}

// LoadDB reads every course and its lessons.
func LoadDB(ctx context.Context, db sqlx.QueryerContext) (*Catalog, error) {
	const qc = `
	SELECT course_id, title, description, instructor, category, level,
		price, image_url, rating, students, duration_hours
	FROM courses
	ORDER BY position, course_id`

	var courses []Course
	if err := sqlx.SelectContext(ctx, db, &courses, qc); err != nil {
		return nil, fmt.Errorf("selecting courses: %w", err)
	}

	const ql = `
	SELECT course_id, idx, title, minutes, free
	FROM lessons
	ORDER BY course_id, idx`

	var lessons []Lesson
	if err := sqlx.SelectContext(ctx, db, &lessons, ql); err != nil {
		return nil, fmt.Errorf("selecting lessons: %w", err)
	}

	cat, err := NewCatalog(courses)
	if err != nil {
		return nil, err
	}
	for _, l := range lessons {
		i, ok := cat.byID[l.CourseID]
		if !ok {
			continue
		}
		cat.courses[i].Lessons = append(cat.courses[i].Lessons, l)
	}
	return cat, nil
}

// All returns every course without lessons, in catalog order.
func (c *Catalog) All() []Course {
	out := make([]Course, len(c.courses))
	for i, crs := range c.courses {
		crs.Lessons = nil
		out[i] = crs
	}
	return out
}

func (c *Catalog) Find(id item.ID) (Course, error) {
	i, ok := c.byID[id]
	if !ok {
		return Course{}, ErrNotFound
	}
	crs := c.courses[i]
	crs.Lessons = append([]Lesson(nil), crs.Lessons...)
	return crs, nil
}

// FindItem lets the catalog feed the cart and the wishlist.
func (c *Catalog) FindItem(_ context.Context, id item.ID) (item.Item, error) {
	crs, err := c.Find(id)
	if err != nil {
		return item.Item{}, fmt.Errorf("%w: %s", item.ErrUnknown, id)
	}
	return crs.Item(), nil
}

func (c *Catalog) Len() int { return len(c.courses) }

// Categories lists the distinct categories in first-seen order.
func (c *Catalog) Categories() []string {
	return distinct(c.courses, func(crs Course) string { return crs.Category })
}

func (c *Catalog) Levels() []string {
	return distinct(c.courses, func(crs Course) string { return crs.Level })
}

func distinct(courses []Course, field func(Course) string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, crs := range courses {
		v := field(crs)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

type Filter struct {
	Query    string
	Category string
	Level    string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Free     bool
	Sort     string
}

// Filter returns the matching courses. Without a sort the catalog order is
// kept.
func (c *Catalog) Filter(f Filter) []Course {
	q := strings.ToLower(strings.TrimSpace(f.Query))

	out := []Course{}
	for _, crs := range c.All() {
		if f.matches(crs, q) {
			out = append(out, crs)
		}
	}

	switch f.Sort {
	case SortPopular:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Students > out[j].Students })
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price.Decimal) })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.GreaterThan(out[j].Price.Decimal) })
	case SortTitle:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
		})
	}
	return out
}

func (f Filter) matches(crs Course, q string) bool {
	if q != "" {
		hay := strings.ToLower(crs.Title + "\n" + crs.Description + "\n" + crs.Instructor)
		if !strings.Contains(hay, q) {
			return false
		}
	}
	if f.Category != "" && !strings.EqualFold(crs.Category, f.Category) {
		return false
	}
	if f.Level != "" && !strings.EqualFold(crs.Level, f.Level) {
		return false
	}
	if f.Free && !crs.Free() {
		return false
	}
	if f.MinPrice != nil && crs.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && crs.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}

// Related returns up to limit courses sharing a category with one of the
// given ids, skipping the ids themselves, best rated first.
func (c *Catalog) Related(ids []item.ID, limit int) []Course {
	exclude := make(map[item.ID]bool, len(ids))
	categories := make(map[string]bool)
	for _, id := range ids {
		exclude[id] = true
		if i, ok := c.byID[id]; ok {
			categories[c.courses[i].Category] = true
		}
	}

	out := []Course{}
	for _, crs := range c.All() {
		if exclude[crs.ID] || (len(categories) > 0 && !categories[crs.Category]) {
			continue
		}
		out = append(out, crs)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
