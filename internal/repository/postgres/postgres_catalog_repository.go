package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/honeynil/employer-dashboard/internal/models"
	pkgerrors "github.com/honeynil/employer-dashboard/pkg/errors"
	"github.com/lib/pq"
)

type PostgresCatalogRepository struct {
	db *sql.DB
}

func NewPostgresCatalogRepository(db *sql.DB) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{db: db}
}

func (r *PostgresCatalogRepository) GetPackage(ctx context.Context, id string) (result *models.Package, err error) {
	ctx, _, done := startCall(ctx, "catalog-repository", "GetPackage")
	defer func() { done(err) }()

	query := `
			SELECT id, name, credits, duration_days
			FROM packages
			WHERE id = $1 AND active
`
	var p models.Package
	err = r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Credits, &p.DurationDays)
	if stderrors.Is(err, sql.ErrNoRows) {
		err = pkgerrors.ErrPackageNotFound
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	return &p, nil
}

// GetUpsells returns the active upsells among ids. Unknown ids are simply
// absent from the result.
func (r *PostgresCatalogRepository) GetUpsells(ctx context.Context, ids []string) (result []models.Upsell, err error) {
	ctx, _, done := startCall(ctx, "catalog-repository", "GetUpsells")
	defer func() { done(err) }()

	result = []models.Upsell{}
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := r.db.QueryContext(ctx, `SELECT id, name, credits FROM upsells WHERE id = ANY($1) AND active`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get upsells: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var u models.Upsell
		if err = rows.Scan(&u.ID, &u.Name, &u.Credits); err != nil {
			return nil, fmt.Errorf("failed to scan upsell: %w", err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate upsells: %w", err)
	}
	return result, nil
}

func (r *PostgresCatalogRepository) GetBundle(ctx context.Context, id string) (result *models.CreditBundle, err error) {
	ctx, _, done := startCall(ctx, "catalog-repository", "GetBundle")
	defer func() { done(err) }()

	var b models.CreditBundle
	err = r.db.QueryRowContext(ctx, `SELECT id, name, credits, price FROM credit_bundles WHERE id = $1 AND active`, id).
		Scan(&b.ID, &b.Name, &b.Credits, &b.Price)
	if stderrors.Is(err, sql.ErrNoRows) {
		err = pkgerrors.ErrBundleNotFound
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bundle: %w", err)
	}
	return &b, nil
}

func (r *PostgresCatalogRepository) List(ctx context.Context) (result *models.Catalog, err error) {
	ctx, _, done := startCall(ctx, "catalog-repository", "ListCatalog")
	defer func() { done(err) }()

	catalog := &models.Catalog{Packages: []models.Package{}, Upsells: []models.Upsell{}, Bundles: []models.CreditBundle{}}

	err = r.each(ctx, `SELECT id, name, credits, duration_days FROM packages WHERE active ORDER BY credits`, func(rows *sql.Rows) error {
		var p models.Package
		if err := rows.Scan(&p.ID, &p.Name, &p.Credits, &p.DurationDays); err != nil {
			return err
		}
		catalog.Packages = append(catalog.Packages, p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = r.each(ctx, `SELECT id, name, credits FROM upsells WHERE active ORDER BY credits`, func(rows *sql.Rows) error {
		var u models.Upsell
		if err := rows.Scan(&u.ID, &u.Name, &u.Credits); err != nil {
			return err
		}
		catalog.Upsells = append(catalog.Upsells, u)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = r.each(ctx, `SELECT id, name, credits, price FROM credit_bundles WHERE active ORDER BY credits`, func(rows *sql.Rows) error {
		var b models.CreditBundle
		if err := rows.Scan(&b.ID, &b.Name, &b.Credits, &b.Price); err != nil {
			return err
		}
		catalog.Bundles = append(catalog.Bundles, b)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("catalog loaded", "packages", len(catalog.Packages), "upsells", len(catalog.Upsells), "bundles", len(catalog.Bundles))
	return catalog, nil
}

func (r *PostgresCatalogRepository) each(ctx context.Context, query string, fn func(*sql.Rows) error) error {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		if err := fn(rows); err != nil {
			return fmt.Errorf("failed to scan catalog row: %w", err)
		}
	}
	return rows.Err()
}
