package queries

import (
	"context"
	"database/sql"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderByNumberQueryHandler retrieves a single order read model by order number.
type GetOrderByNumberQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderByNumberQueryHandler creates a handler for order detail queries.
// Requires a GORM database connection for query execution.
func NewGetOrderByNumberQueryHandler(db *gorm.DB) GetOrderByNumberQueryHandler {
	return GetOrderByNumberQueryHandler{db: db}
}

// Handle executes the query for one order and its line items.
// Returns an ObjectNotFoundError when no order carries the requested number.
func (h GetOrderByNumberQueryHandler) Handle(
	ctx context.Context,
	query GetOrderByNumberQuery,
) (GetOrderByNumberQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderByNumberQueryResponse{}, err
	}

	var resp GetOrderByNumberQueryResponse
	var id uuid.UUID
	var status int

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.order_number,
			o.status,
			o.is_paid,
			o.note,
			o.customer_name,
			o.customer_email,
			o.customer_phone,
			o.delivery_street,
			o.delivery_city,
			o.delivery_fee_cents
				+ COALESCE(SUM(i.price_cents * COALESCE(i.actual_quantity, i.quantity)), 0) AS total_cents
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.order_number = ?
		GROUP BY o.id, o.order_number, o.status, o.is_paid, o.note, o.customer_name,
			o.customer_email, o.customer_phone, o.delivery_street, o.delivery_city,
			o.delivery_fee_cents
	`, query.OrderNumber()).Row()

	err := row.Scan(
		&id,
		&resp.OrderNumber,
		&status,
		&resp.IsPaid,
		&resp.Note,
		&resp.CustomerName,
		&resp.CustomerEmail,
		&resp.CustomerPhone,
		&resp.Street,
		&resp.City,
		&resp.TotalCents,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderByNumberQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderNumber())
		}
		return GetOrderByNumberQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderByNumberQueryResponse{}, err
	}
	resp.ID = orderID
	resp.Status = order.Status(status).String()

	items, err := h.loadItems(ctx, id)
	if err != nil {
		return GetOrderByNumberQueryResponse{}, err
	}
	resp.Items = items

	return resp, nil
}

func (h GetOrderByNumberQueryHandler) loadItems(
	ctx context.Context, orderID uuid.UUID,
) ([]GetOrderByNumberItemResponse, error) {
	items := make([]GetOrderByNumberItemResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			product_id,
			name,
			quantity,
			actual_quantity,
			price_cents,
			unit
		FROM order_items
		WHERE order_id = ?
		ORDER BY name
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item GetOrderByNumberItemResponse
		var productID uuid.UUID
		var actualQuantity sql.NullInt64

		err = rows.Scan(
			&productID,
			&item.Name,
			&item.Quantity,
			&actualQuantity,
			&item.PriceCents,
			&item.Unit,
		)
		if err != nil {
			return nil, err
		}

		itemProductID, idErr := kernel.UUIDFromBytes(productID[:])
		if idErr != nil {
			return nil, idErr
		}
		item.ProductID = itemProductID

		if actualQuantity.Valid {
			actual := int(actualQuantity.Int64)
			item.ActualQuantity = &actual
		}

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
