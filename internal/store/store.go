// Package store implements the database collaborators of the import
// pipeline on top of pgx: the read-only lookup-table source and the
// transactional property writer.
package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contaboo/property-importer/internal/core"
)

// Store owns one pool connection's worth of import state: the transaction
// accepting inserts between flushes. Acquired once at run start and
// released unconditionally via Close.
type Store struct {
	pool *pgxpool.Pool
	tx   pgx.Tx
}

// New opens a store over an existing pool and begins the first write
// transaction. A begin failure here is a setup failure: fatal to the run.
func New(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import transaction: %w", err)
	}
	return &Store{pool: pool, tx: tx}, nil
}

const insertPropertySQL = `
	INSERT INTO properties (
		id, company_id, created_by_id, property_number,
		type_id, status_id, finishing_status_id, region_id,
		property_name, title, description,
		land_area, total_area, rooms_count, bedrooms_count,
		sale_price, rental_price_monthly, currency_id,
		building_name, unit_number, floor_number,
		created_at, updated_at
	) VALUES (
		$1, $2, $3, $4,
		$5, $6, $7, $8,
		$9, $10, $11,
		$12, $13, $14, $15,
		$16, $17, $18,
		$19, $20, $21,
		$22, $23
	)`

// Insert writes one normalized property inside the current transaction.
// The row identifier is driver-generated. Each insert runs under a
// savepoint (a pgx nested transaction) so a constraint violation poisons
// only this row, not the whole batch.
func (s *Store) Insert(ctx context.Context, p core.PropertyParams) error {
	sp, err := s.tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("savepoint: %w", err)
	}
	_, err = sp.Exec(ctx, insertPropertySQL,
		uuid.NewString(), p.CompanyID, p.CreatedByID, p.PropertyNumber,
		p.TypeID, p.StatusID, p.FinishingStatusID, p.RegionID,
		p.PropertyName, p.Title, p.Description,
		p.LandArea, p.TotalArea, p.RoomsCount, p.BedroomsCount,
		p.SalePrice, p.RentalPriceMonthly, p.CurrencyID,
		p.BuildingName, p.UnitNumber, p.FloorNumber,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		_ = sp.Rollback(ctx)
		return err
	}
	return sp.Commit(ctx)
}

// Flush commits the current transaction, making prior inserts durable, and
// begins a fresh one for the next batch.
func (s *Store) Flush(ctx context.Context) error {
	if err := s.tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin next transaction: %w", err)
	}
	s.tx = tx
	return nil
}

// Close rolls back whatever the last flush did not commit. Safe to defer
// alongside a successful run: rolling back a committed transaction is a
// no-op error that is ignored.
func (s *Store) Close(ctx context.Context) {
	_ = s.tx.Rollback(ctx)
}

// Categories returns the property category vocabulary for a company.
func (s *Store) Categories(ctx context.Context, companyID string) ([]core.LookupEntry, error) {
	return s.lookup(ctx, "SELECT id, name FROM property_categories WHERE company_id = $1", companyID)
}

// Types returns the property type vocabulary for a company.
func (s *Store) Types(ctx context.Context, companyID string) ([]core.LookupEntry, error) {
	return s.lookup(ctx, "SELECT id, name FROM property_types WHERE company_id = $1", companyID)
}

// Statuses returns the property status vocabulary for a company.
func (s *Store) Statuses(ctx context.Context, companyID string) ([]core.LookupEntry, error) {
	return s.lookup(ctx, "SELECT id, name FROM property_statuses WHERE company_id = $1", companyID)
}

// Finishing returns the finishing-status vocabulary for a company.
func (s *Store) Finishing(ctx context.Context, companyID string) ([]core.LookupEntry, error) {
	return s.lookup(ctx, "SELECT id, name FROM finishing_statuses WHERE company_id = $1", companyID)
}

// Regions returns the region vocabulary for a company, including the
// optional display alias.
func (s *Store) Regions(ctx context.Context, companyID string) ([]core.RegionEntry, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT id, name, display_name FROM regions WHERE company_id = $1", companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []core.RegionEntry
	for rows.Next() {
		var e core.RegionEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.DisplayName); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Currencies returns all currencies. Unlike the other vocabularies they
// are global, not tenant-scoped.
func (s *Store) Currencies(ctx context.Context) ([]core.CurrencyEntry, error) {
	rows, err := s.pool.Query(ctx, "SELECT id, code FROM currencies")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []core.CurrencyEntry
	for rows.Next() {
		var e core.CurrencyEntry
		if err := rows.Scan(&e.ID, &e.Code); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) lookup(ctx context.Context, query, companyID string) ([]core.LookupEntry, error) {
	rows, err := s.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []core.LookupEntry
	for rows.Next() {
		var e core.LookupEntry
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
