package course

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/irsalhamdi/learnhub/api/web"
	"github.com/irsalhamdi/learnhub/api/weberr"
	"github.com/irsalhamdi/learnhub/core/item"
	"github.com/shopspring/decimal"
)

type Facets struct {
	Categories []string `json:"categories"`
	Levels     []string `json:"levels"`
}

func HandleList(cat *Catalog) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		f, err := parseFilter(r)
		if err != nil {
			return weberr.Invalid(err)
		}

		return web.Respond(ctx, w, cat.Filter(f), http.StatusOK)
	}
}

func HandleShow(cat *Catalog) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := item.ParseID(web.Param(r, "id"))

		crs, err := cat.Find(id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(fmt.Errorf("course[%s] not found", id))
			}
			return fmt.Errorf("fetching course[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, crs, http.StatusOK)
	}
}

func HandleCategories(cat *Catalog) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		f := Facets{Categories: cat.Categories(), Levels: cat.Levels()}
		return web.Respond(ctx, w, f, http.StatusOK)
	}
}

func parseFilter(r *http.Request) (Filter, error) {
	q := r.URL.Query()
	f := Filter{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Level:    q.Get("level"),
		Sort:     q.Get("sort"),
	}

	if !IsValidSort(f.Sort) {
		return Filter{}, fmt.Errorf("unknown sort %q", f.Sort)
	}

	var err error
	if f.Free, err = web.QueryBool(r, "free"); err != nil {
		return Filter{}, err
	}
	if f.MinPrice, err = priceParam(q.Get("min_price"), "min_price"); err != nil {
		return Filter{}, err
	}
	if f.MaxPrice, err = priceParam(q.Get("max_price"), "max_price"); err != nil {
		return Filter{}, err
	}
	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		return Filter{}, errors.New("min_price must not exceed max_price")
	}

	return f, nil
}

func priceParam(v, name string) (*decimal.Decimal, error) {
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, fmt.Errorf("%s must be a valid number", name)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("%s must not be negative", name)
	}
	return &d, nil
}
