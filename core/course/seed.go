package course

import (
	"context"
	"fmt"

	"github.com/irsalhamdi/learnhub/database"
	"github.com/jmoiron/sqlx"
)

// Seed writes the catalog into an empty database. A database that already
// holds courses is left alone.
func Seed(ctx context.Context, db *sqlx.DB, cat *Catalog) error {
	var n int
	if err := db.GetContext(ctx, &n, `SELECT count(*) FROM courses`); err != nil {
		return fmt.Errorf("counting courses: %w", err)
	}
	if n > 0 {
		return nil
	}

	return database.Transaction(db, func(tx sqlx.ExtContext) error {
		const qc = `
		INSERT INTO courses (course_id, position, title, description, instructor, category,
			level, price, image_url, rating, students, duration_hours)
		VALUES (:course_id, :position, :title, :description, :instructor, :category,
			:level, :price, :image_url, :rating, :students, :duration_hours)`

		const ql = `
		INSERT INTO lessons (course_id, idx, title, minutes, free)
		VALUES (:course_id, :idx, :title, :minutes, :free)`

		for pos, crs := range cat.courses {
			row := struct {
				Course
				Position int `db:"position"`
			}{crs, pos}

			if _, err := sqlx.NamedExecContext(ctx, tx, qc, row); err != nil {
				return fmt.Errorf("inserting course[%s]: %w", crs.ID, err)
			}

			for _, l := range crs.Lessons {
				l.CourseID = crs.ID
				if _, err := sqlx.NamedExecContext(ctx, tx, ql, l); err != nil {
					return fmt.Errorf("inserting lesson %d of course[%s]: %w", l.Index, crs.ID, err)
				}
			}
		}
		return nil
	})
}
