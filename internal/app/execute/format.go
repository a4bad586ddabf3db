package execute

import (
	"fmt"
	"strings"

	"ventia/internal/domain/records"
)

func formatCustomers(customers []records.Customer) string {
	if len(customers) == 0 {
		return "No customers found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d customer(s):\n", len(customers))
	for i, c := range customers {
		fmt.Fprintf(&b, "%d. %s (id %d", i+1, c.Name, c.ID)
		if c.Email != "" {
			fmt.Fprintf(&b, ", %s", c.Email)
		}
		if c.Phone != "" {
			fmt.Fprintf(&b, ", tel %s", c.Phone)
		}
		b.WriteString(")\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatProducts(products []records.Product) string {
	if len(products) == 0 {
		return "No products found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d product(s):\n", len(products))
	for i, p := range products {
		fmt.Fprintf(&b, "%d. %s (id %d, price %.2f, stock %d)\n", i+1, p.Name, p.ID, p.Price, p.Stock)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatSales(sales []records.Sale) string {
	if len(sales) == 0 {
		return "No sales found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d sale(s):\n", len(sales))
	for i, s := range sales {
		fmt.Fprintf(&b, "%d. sale %d, customer %d, total %.2f, %s\n", i+1, s.ID, s.CustomerID, s.Total, s.Status)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatInvoices(invoices []records.Invoice) string {
	if len(invoices) == 0 {
		return "No invoices found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d invoice(s):\n", len(invoices))
	for i, inv := range invoices {
		fmt.Fprintf(&b, "%d. %s (sale %d, total %.2f, %s)\n", i+1, inv.Number, inv.SaleID, inv.Total, inv.Status)
	}
	return strings.TrimRight(b.String(), "\n")
}
