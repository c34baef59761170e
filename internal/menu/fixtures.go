package menu

// DemoMenu is the starter menu used when seeding is enabled and menu_items is empty.
func DemoMenu() []MenuItem {
	return []MenuItem{
		{ID: "1", Name: "Classic Cheeseburger", Description: "Angus beef patty with cheddar, lettuce, tomato, and house sauce.",
			Price: 12.99, Category: "Burgers", Image: "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?auto=format&fit=crop&w=800&q=80", Available: true},
		{ID: "2", Name: "Double Bacon Blast", Description: "Two patties, crispy bacon, onion rings, and BBQ sauce.",
			Price: 16.50, Category: "Burgers", Image: "https://images.unsplash.com/photo-1594212699903-ec8a3eca50f5?auto=format&fit=crop&w=800&q=80", Available: true},
		{ID: "3", Name: "Margherita Pizza", Description: "Fresh basil, mozzarella, and san marzano tomato sauce.",
			Price: 14.00, Category: "Pizza", Image: "https://images.unsplash.com/photo-1574071318508-1cdbab80d002?auto=format&fit=crop&w=800&q=80", Available: true},
		{ID: "4", Name: "Pepperoni Feast", Description: "Loaded with double pepperoni and extra cheese.",
			Price: 16.00, Category: "Pizza", Image: "https://images.unsplash.com/photo-1628840042765-356cda07504e?auto=format&fit=crop&w=800&q=80", Available: true},
		{ID: "5", Name: "Strawberry Milkshake", Description: "Real strawberries, vanilla ice cream, and whipped cream.",
			Price: 6.50, Category: "Drinks", Image: "https://images.unsplash.com/photo-1572490122747-3968b75cc699?auto=format&fit=crop&w=800&q=80", Available: true},
	}
}
