package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/office-orders/internal/domain/entity"
	"github.com/tu-usuario/office-orders/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
// Las líneas de pedido se guardan como documento JSONB dentro de la fila del
// pedido: la creación es un único insert atómico y la transición un único
// update atómico, sin semántica de fallo parcial.
type OrderRepo struct {
	pool *pgxpool.Pool
}

// NewOrderRepository construye el adaptador de persistencia para pedidos.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

// Create persiste un nuevo pedido con sus líneas embebidas.
func (r *OrderRepo) Create(order *entity.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}
	query := `
		INSERT INTO orders (id, employee_id, employee_name, department, items, status, note, ordered_at, delivered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.pool.Exec(context.Background(), query,
		order.ID, order.EmployeeID, order.EmployeeName, order.Department,
		itemsJSON, order.Status, order.Note, order.OrderedAt, order.DeliveredAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID. Devuelve (nil, nil) si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `
		SELECT id, employee_id, employee_name, department, items, status, note, ordered_at, delivered_at
		FROM orders WHERE id = $1`
	return scanOrder(r.pool.QueryRow(context.Background(), query, id), "get order by id")
}

// List lista pedidos según el filtro, del más reciente al más antiguo.
func (r *OrderRepo) List(filter repository.OrderFilter) ([]*entity.Order, error) {
	query := `
		SELECT id, employee_id, employee_name, department, items, status, note, ordered_at, delivered_at
		FROM orders WHERE 1=1`
	args := []any{}
	n := 0
	if filter.EmployeeID != "" {
		n++
		query += fmt.Sprintf(" AND employee_id = $%d", n)
		args = append(args, filter.EmployeeID)
	}
	if filter.Status != "" {
		n++
		query += fmt.Sprintf(" AND status = $%d", n)
		args = append(args, filter.Status)
	} else if filter.ExcludeTerminal {
		n++
		query += fmt.Sprintf(" AND status NOT IN ($%d, $%d)", n, n+1)
		n++
		args = append(args, entity.StatusDelivered, entity.StatusCancelled)
	}
	query += " ORDER BY ordered_at DESC"
	if filter.Limit > 0 {
		n++
		query += fmt.Sprintf(" LIMIT $%d", n)
		args = append(args, filter.Limit)
	}

	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrderRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// UpdateStatus compare-and-set del estado: solo escribe si el estado actual
// sigue siendo expectedStatus. delivered_at se estampa con COALESCE para que
// el primer valor nunca se sobrescriba. Devuelve (nil, nil) si el CAS no
// encontró fila.
func (r *OrderRepo) UpdateStatus(id, expectedStatus, newStatus string, stampDelivered bool) (*entity.Order, error) {
	query := `
		UPDATE orders
		SET status = $3,
		    delivered_at = CASE WHEN $4 THEN COALESCE(delivered_at, now()) ELSE delivered_at END
		WHERE id = $1 AND status = $2
		RETURNING id, employee_id, employee_name, department, items, status, note, ordered_at, delivered_at`
	o, err := scanOrder(r.pool.QueryRow(context.Background(), query, id, expectedStatus, newStatus, stampDelivered), "update order status")
	if err != nil {
		return nil, err
	}
	return o, nil
}

func scanOrder(row pgx.Row, op string) (*entity.Order, error) {
	var o entity.Order
	var itemsJSON []byte
	err := row.Scan(&o.ID, &o.EmployeeID, &o.EmployeeName, &o.Department,
		&itemsJSON, &o.Status, &o.Note, &o.OrderedAt, &o.DeliveredAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return nil, fmt.Errorf("%s: unmarshal items: %w", op, err)
	}
	return &o, nil
}

func scanOrderRow(rows pgx.Rows) (*entity.Order, error) {
	var o entity.Order
	var itemsJSON []byte
	if err := rows.Scan(&o.ID, &o.EmployeeID, &o.EmployeeName, &o.Department,
		&itemsJSON, &o.Status, &o.Note, &o.OrderedAt, &o.DeliveredAt); err != nil {
		return nil, fmt.Errorf("scan order: %w", err)
	}
	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	return &o, nil
}
