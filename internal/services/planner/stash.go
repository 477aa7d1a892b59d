package planner

import "github.com/mcoot/santaworkshop/internal/model"

// SweetsCategory matches every child regardless of interests
const SweetsCategory = "Sweets"

// WishlistCategory is the category given to wishlist picks
const WishlistCategory = "Wishlist"

// Stash is the fallback catalog used to fill the remaining budget
var Stash = []model.Gift{
	{ID: "s1", Name: "Art Set", Price: 400, Category: "Drawing"},
	{ID: "s2", Name: "Barbie Doll", Price: 900, Category: "Toys"},
	{ID: "s3", Name: "Building Blocks", Price: 600, Category: "Toys"},
	{ID: "s4", Name: "Story Book", Price: 250, Category: "Books"},
	{ID: "s5", Name: "Bicycle", Price: 3500, Category: "Outdoor"},
	{ID: "s6", Name: "Chocolates", Price: 200, Category: SweetsCategory},
	{ID: "s7", Name: "RC Car", Price: 1200, Category: "Toys"},
	{ID: "s8", Name: "Puzzle", Price: 300, Category: "Games"},
	{ID: "s9", Name: "Action Figure", Price: 500, Category: "Toys"},
	{ID: "s10", Name: "Smart Watch (Kids)", Price: 1500, Category: "Gadgets"},
}
