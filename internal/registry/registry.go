// Package registry defines the closed set of entity names exposed by the
// generic dispatch routes.
package registry

// Entity identifies one of the five business record types.
type Entity string

const (
	CashMovements     Entity = "cash_movements"
	Products          Entity = "products"
	Sales             Entity = "sales"
	MarketplaceOrders Entity = "marketplace_orders"
	Users             Entity = "users"
)

// Parse resolves an external entity name. Names are case-sensitive; anything
// outside the registry reports ok=false and must short-circuit dispatch.
func Parse(name string) (Entity, bool) {
	switch e := Entity(name); e {
	case CashMovements, Products, Sales, MarketplaceOrders, Users:
		return e, true
	}
	return "", false
}

// All lists every registered entity in a stable order.
func All() []Entity {
	return []Entity{CashMovements, Products, Sales, MarketplaceOrders, Users}
}
