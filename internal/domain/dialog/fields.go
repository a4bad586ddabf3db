package dialog

// Field catalog per entity kind. The extractor advertises these names to
// the model and the resolver drops anything outside them.
var fieldCatalog = map[EntityKind][]string{
	KindCustomer: {"id", "name", "email", "phone", "address"},
	KindProduct:  {"id", "name", "description", "price", "stock"},
	KindSale:     {"id", "customer_id", "product_id", "quantity"},
	KindInvoice:  {"id", "sale_id"},
}

func KnownFields(kind EntityKind) []string {
	fields := fieldCatalog[kind]
	out := make([]string, len(fields))
	copy(out, fields)
	return out
}
