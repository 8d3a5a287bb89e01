package dto

// Product is the wire form of a catalog product.
type Product struct {
	Index         int    `json:"index"`
	ID            string `json:"id"`
	Name          string `json:"name"`
	Price         string `json:"price"`
	ImageURL      string `json:"image_url"`
	OriginalImage string `json:"original_image"`
	Description   string `json:"description"`
	Category      string `json:"category"`
}

// Category is one distinct product group and how many products carry it.
type Category struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// OrderLink is a composed order message and the deep link that carries it.
type OrderLink struct {
	Link    string   `json:"link"`
	Message string   `json:"message"`
	Product *Product `json:"product,omitempty"`
}
