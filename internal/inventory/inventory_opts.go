package inventory

type InventoryOpt func(*Inventory)

// WithSaleConfig replaces the default sale window.
func WithSaleConfig(cfg SaleConfig) InventoryOpt {
	return func(inv *Inventory) {
		inv.sale = cfg
	}
}
