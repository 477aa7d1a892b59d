package model

// ShopItem is a collectible that can be bought with points
type ShopItem struct {
	ID   ItemID
	Name string
	Cost int
	Icon string
}

// ShopListing is a shop item annotated for the active wallet
type ShopListing struct {
	Item       ShopItem
	Owned      bool
	Affordable bool
	Shortfall  int // Points still needed; 0 if affordable or owned
}
