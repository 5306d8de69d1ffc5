package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/office-orders/internal/domain"
	"github.com/tu-usuario/office-orders/internal/domain/entity"
	"github.com/tu-usuario/office-orders/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL.
// El precio es NUMERIC nullable y se mapea a *decimal.Decimal vía el codec
// registrado en el pool.
type ItemRepo struct {
	pool *pgxpool.Pool
}

// NewItemRepository construye el adaptador de persistencia para el catálogo.
func NewItemRepository(pool *pgxpool.Pool) *ItemRepo {
	return &ItemRepo{pool: pool}
}

// Create persiste un nuevo artículo.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (id, name, price, available, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(context.Background(), query,
		item.ID, item.Name, item.Price, item.Available, item.Category, item.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID. Devuelve (nil, nil) si no existe.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `SELECT id, name, price, available, category, created_at FROM items WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, id), "get item by id")
}

// GetByName obtiene un artículo por nombre exacto.
func (r *ItemRepo) GetByName(name string) (*entity.Item, error) {
	query := `SELECT id, name, price, available, category, created_at FROM items WHERE name = $1 LIMIT 1`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, name), "get item by name")
}

// List lista el catálogo ordenado por nombre; onlyAvailable filtra los no disponibles.
func (r *ItemRepo) List(onlyAvailable bool) ([]*entity.Item, error) {
	query := `SELECT id, name, price, available, category, created_at FROM items`
	if onlyAvailable {
		query += ` WHERE available`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Price, &it.Available, &it.Category, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Update actualiza nombre, precio, disponibilidad y categoría.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items SET name = $2, price = $3, available = $4, category = $5
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		item.ID, item.Name, item.Price, item.Available, item.Category,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// Delete elimina un artículo por ID. Devuelve false si no existía.
func (r *ItemRepo) Delete(id string) (bool, error) {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ItemRepo) scanOne(row pgx.Row, op string) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(&it.ID, &it.Name, &it.Price, &it.Available, &it.Category, &it.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &it, nil
}
