package audit

import (
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/devsolaris/natursur-bot/internal/domain/models"
)

// OrderLog mantiene un fichero JSON (array de pedidos) como registro local de
// auditoría, independiente del envío al backend.
type OrderLog struct {
	path   string
	mu     sync.Mutex
	logger *slog.Logger
}

func NewOrderLog(path string, logger *slog.Logger) *OrderLog {
	return &OrderLog{
		path:   path,
		logger: logger,
	}
}

func (l *OrderLog) Append(order *models.Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	orders, err := l.readLocked()
	if err != nil {
		return err
	}

	orders = append(orders, *order)

	if err := os.WriteFile(l.path, encodeOrders(orders), 0o600); err != nil {
		return errors.Wrap(err, "error al escribir el registro de pedidos")
	}

	l.logger.Info("Pedido anotado en el registro local",
		"file", l.path,
		"total", len(orders),
	)

	return nil
}

func (l *OrderLog) ReadAll() ([]models.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.readLocked()
}

// ReadSince devuelve los pedidos con timestamp posterior al corte.
func (l *OrderLog) ReadSince(cutoff time.Time) ([]models.Order, error) {
	all, err := l.ReadAll()
	if err != nil {
		return nil, err
	}

	var recent []models.Order

	for _, o := range all {
		ts, err := time.ParseInLocation(models.OrderTimestampLayout, o.Timestamp, time.Local)
		if err != nil {
			continue
		}

		if ts.After(cutoff) {
			recent = append(recent, o)
		}
	}

	return recent, nil
}

func (l *OrderLog) readLocked() ([]models.Order, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "error al leer el registro de pedidos")
	}

	if len(data) == 0 {
		return nil, nil
	}

	orders, err := decodeOrders(data)
	if err != nil {
		return nil, errors.Wrap(err, "registro de pedidos corrupto")
	}

	return orders, nil
}

func encodeOrders(orders []models.Order) []byte {
	var e jx.Encoder

	e.SetIdent(2)
	e.ArrStart()

	for i := range orders {
		encodeOrder(&e, &orders[i])
	}

	e.ArrEnd()

	return e.Bytes()
}

func encodeOrder(e *jx.Encoder, o *models.Order) {
	e.ObjStart()

	e.FieldStart("userId")
	e.Int64(o.UserID)
	e.FieldStart("username")
	e.Str(o.Username)
	e.FieldStart("fullName")
	e.Str(o.FullName)

	e.FieldStart("items")
	e.ArrStart()

	for _, item := range o.Items {
		e.ObjStart()
		e.FieldStart("product")
		e.Str(item.Product)
		e.FieldStart("productId")
		e.Str(item.ProductID)
		e.FieldStart("cantidad")
		e.Int(item.Cantidad)
		e.ObjEnd()
	}

	e.ArrEnd()

	e.FieldStart("timestamp")
	e.Str(o.Timestamp)

	e.ObjEnd()
}

func decodeOrders(data []byte) ([]models.Order, error) {
	d := jx.DecodeBytes(data)

	var orders []models.Order

	err := d.Arr(func(d *jx.Decoder) error {
		order, err := decodeOrder(d)
		if err != nil {
			return err
		}

		orders = append(orders, order)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return orders, nil
}

func decodeOrder(d *jx.Decoder) (models.Order, error) {
	var o models.Order

	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "userId":
			v, err := d.Int64()
			o.UserID = v

			return err
		case "username":
			v, err := d.Str()
			o.Username = v

			return err
		case "fullName":
			v, err := d.Str()
			o.FullName = v

			return err
		case "timestamp":
			v, err := d.Str()
			o.Timestamp = v

			return err
		case "items":
			return d.Arr(func(d *jx.Decoder) error {
				item, err := decodeItem(d)
				if err != nil {
					return err
				}

				o.Items = append(o.Items, item)

				return nil
			})
		default:
			return d.Skip()
		}
	})

	return o, err
}

func decodeItem(d *jx.Decoder) (models.OrderItem, error) {
	var item models.OrderItem

	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "product":
			v, err := d.Str()
			item.Product = v

			return err
		case "productId":
			v, err := d.Str()
			item.ProductID = v

			return err
		case "cantidad":
			v, err := d.Int()
			item.Cantidad = v

			return err
		default:
			return d.Skip()
		}
	})

	return item, err
}
