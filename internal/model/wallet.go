package model

// ItemID identifies an item that can be owned in a wallet inventory
type ItemID string

// Wallet is the points balance and inventory owned by one profile
type Wallet struct {
	Profile   ProfileName
	Points    int
	Inventory []ItemID // Unique ids, insertion order kept for display
}

// NewWallet creates an empty wallet for a profile
func NewWallet(profile ProfileName) *Wallet {
	return &Wallet{
		Profile:   profile,
		Inventory: []ItemID{},
	}
}

// Credit adds points to the balance. The balance never drops below zero,
// even if a negative amount is passed.
func (w *Wallet) Credit(amount int) {
	w.Points += amount
	if w.Points < 0 {
		w.Points = 0
	}
}

// Debit removes points from the balance, clamping at zero
func (w *Wallet) Debit(amount int) {
	w.Points = max(0, w.Points-amount)
}

// Owns returns true if the item is in the inventory
func (w *Wallet) Owns(id ItemID) bool {
	for _, owned := range w.Inventory {
		if owned == id {
			return true
		}
	}
	return false
}

// AddItem inserts an item into the inventory.
// Returns false if the item was already owned.
func (w *Wallet) AddItem(id ItemID) bool {
	if w.Owns(id) {
		return false
	}
	w.Inventory = append(w.Inventory, id)
	return true
}

// Clone returns a deep copy safe to hand to callers
func (w *Wallet) Clone() *Wallet {
	inv := make([]ItemID, len(w.Inventory))
	copy(inv, w.Inventory)
	return &Wallet{
		Profile:   w.Profile,
		Points:    w.Points,
		Inventory: inv,
	}
}
