package repos

import "storefront/internal/domain"

// SeedProducts is the catalog shown until an admin saves one, and the data
// the admin catalog is initialized from.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Wireless Headphones", Category: "Electronics", Price: 129.99, Rating: 4.5, Image: "https://images.example.com/headphones.jpg"},
		{ID: 2, Name: "Smart Watch", Category: "Electronics", Price: 199.0, Rating: 4.2, Image: "https://images.example.com/watch.jpg"},
		{ID: 3, Name: "Canvas Sneakers", Category: "Fashion", Price: 59.95, Rating: 4.1, Image: "https://images.example.com/sneakers.jpg"},
		{ID: 4, Name: "Cotton T-Shirt", Category: "Fashion", Price: 24.0, Rating: 4.0, Image: "https://images.example.com/tshirt.jpg"},
		{ID: 5, Name: "Coffee Maker", Category: "Home", Price: 89.5, Rating: 4.4, Image: "https://images.example.com/coffee.jpg"},
		{ID: 6, Name: "Study Lamp", Category: "Home", Price: 39.99, Rating: 4.3, Image: "https://images.example.com/lamp.jpg"},
		{ID: 7, Name: "Business Book", Category: "Books", Price: 29.0, Rating: 4.6, Image: "https://images.example.com/business-book.jpg"},
		{ID: 8, Name: "Cooking Book", Category: "Books", Price: 21.5, Rating: 4.1, Image: "https://images.example.com/cooking-book.jpg"},
	}
}
