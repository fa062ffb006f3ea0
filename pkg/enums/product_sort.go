package enums

import "strings"

// ProductSort is the public sort key accepted by the catalog listing.
type ProductSort string

const (
	ProductSortName  ProductSort = "name"
	ProductSortPrice ProductSort = "price"
	ProductSortStock ProductSort = "stock"
)

var productSortColumns = map[ProductSort]string{
	ProductSortName:  "name",
	ProductSortPrice: "price_per_kg",
	ProductSortStock: "stock_quantity",
}

// SortOrder is the listing direction.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// Column maps the sort key to its products column; unknown keys sort by name.
func (s ProductSort) Column() string {
	if column, ok := productSortColumns[ProductSort(strings.ToLower(string(s)))]; ok {
		return column
	}
	return productSortColumns[ProductSortName]
}

// IsValid reports whether the key is one of the supported sort keys.
func (s ProductSort) IsValid() bool {
	_, ok := productSortColumns[s]
	return ok
}

// Normalize returns desc only when explicitly requested.
func (o SortOrder) Normalize() SortOrder {
	if strings.EqualFold(string(o), string(SortOrderDesc)) {
		return SortOrderDesc
	}
	return SortOrderAsc
}

// SQL renders the direction keyword.
func (o SortOrder) SQL() string {
	return strings.ToUpper(string(o.Normalize()))
}
