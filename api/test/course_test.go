package test

import (
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/irsalhamdi/learnhub/core/course"
)

func TestCourses(t *testing.T) {
	env := NewTestEnv(t)
	c := env.Client()

	var all []course.Course
	env.Do(t, c, http.MethodGet, "/courses", nil, &all, http.StatusOK)
	if len(all) != env.Catalog.Len() {
		t.Fatalf("expected %d courses, got %d", env.Catalog.Len(), len(all))
	}

	var free []course.Course
	env.Do(t, c, http.MethodGet, "/courses?free=true&sort=title", nil, &free, http.StatusOK)
	var titles []string
	for _, crs := range free {
		titles = append(titles, crs.Title)
	}
	if diff := cmp.Diff([]string{"Docker Essentials", "HTML and CSS from Scratch"}, titles); diff != "" {
		t.Fatalf("unexpected free courses (-want +got):\n%s", diff)
	}

	var design []course.Course
	env.Do(t, c, http.MethodGet, "/courses?category=Design&max_price=20", nil, &design, http.StatusOK)
	if len(design) != 1 || design[0].Title != "UI Design Principles" {
		t.Fatalf("unexpected design courses %+v", design)
	}

	for _, q := range []string{"?sort=cheapest", "?min_price=abc", "?min_price=-1", "?min_price=50&max_price=10", "?free=maybe"} {
		env.Do(t, c, http.MethodGet, "/courses"+q, nil, nil, http.StatusBadRequest)
	}

	var crs course.Course
	env.Do(t, c, http.MethodGet, "/courses/2", nil, &crs, http.StatusOK)
	if crs.Title != "Go for Backend Engineers" || len(crs.Lessons) == 0 {
		t.Fatalf("unexpected course detail %+v", crs)
	}
	env.Do(t, c, http.MethodGet, "/courses/unknown", nil, nil, http.StatusNotFound)

	var facets course.Facets
	env.Do(t, c, http.MethodGet, "/courses/categories", nil, &facets, http.StatusOK)
	if len(facets.Categories) != 5 || len(facets.Levels) != 3 {
		t.Fatalf("unexpected facets %+v", facets)
	}
}
