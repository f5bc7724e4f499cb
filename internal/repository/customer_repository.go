package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/support-pipeline/internal/domain"
)

// ErrIdentifierExists signals that another customer already owns one of the
// identifiers being registered. Callers should re-fetch instead of failing.
var ErrIdentifierExists = errors.New("customer identifier already registered")

// CustomerRepository encapsulates customer persistence.
type CustomerRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Customer, error)
	FindByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	Create(ctx context.Context, name string, email, phone, company *string) (*domain.Customer, error)
}

type customerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository instantiates repository.
func NewCustomerRepository(pool *pgxpool.Pool) CustomerRepository {
	return &customerRepository{pool: pool}
}

const customerByIdentifierQuery = `
        SELECT c.id, c.name, c.email, c.phone, c.company, c.created_at
        FROM customers c
        JOIN customer_identifiers ci ON c.id = ci.customer_id
        WHERE ci.identifier_type = $1 AND ci.identifier_value = $2`

func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return r.findByIdentifier(ctx, domain.IdentifierEmail, email)
}

func (r *customerRepository) FindByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	return r.findByIdentifier(ctx, domain.IdentifierPhone, phone)
}

func (r *customerRepository) findByIdentifier(ctx context.Context, idType domain.IdentifierType, value string) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.pool.QueryRow(ctx, customerByIdentifierQuery, idType, value).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
		&customer.Phone,
		&customer.Company,
		&customer.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// Create inserts the customer and registers identifier mappings in one
// transaction. A unique violation on an identifier aborts the transaction
// and surfaces ErrIdentifierExists.
func (r *customerRepository) Create(ctx context.Context, name string, email, phone, company *string) (*domain.Customer, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var customer domain.Customer
	const insertCustomer = `
        INSERT INTO customers (name, email, phone, company)
        VALUES ($1, $2, $3, $4)
        RETURNING id, name, email, phone, company, created_at`
	if err := tx.QueryRow(ctx, insertCustomer, name, email, phone, company).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
		&customer.Phone,
		&customer.Company,
		&customer.CreatedAt,
	); err != nil {
		return nil, err
	}

	const insertIdentifier = `
        INSERT INTO customer_identifiers (customer_id, identifier_type, identifier_value, channel)
        VALUES ($1, $2, $3, $4)`
	if email != nil && *email != "" {
		if _, err := tx.Exec(ctx, insertIdentifier, customer.ID, domain.IdentifierEmail, *email, domain.ChannelEmail); err != nil {
			return nil, mapUniqueViolation(err)
		}
	}
	if phone != nil && *phone != "" {
		if _, err := tx.Exec(ctx, insertIdentifier, customer.ID, domain.IdentifierPhone, *phone, domain.ChannelWhatsApp); err != nil {
			return nil, mapUniqueViolation(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &customer, nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrIdentifierExists
	}
	return err
}
