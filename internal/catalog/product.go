package catalog

// MaxQuantity is the exclusive upper bound of a synthetic inventory draw.
const MaxQuantity = 20

type Product struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}
