package model

// FallingKind is the type of item falling in the catcher game
type FallingKind string

const (
	FallingGift   FallingKind = "gift"
	FallingCookie FallingKind = "cookie"
	FallingCoal   FallingKind = "coal"
)

// ScoreDelta returns the score change applied when the item is caught
func (k FallingKind) ScoreDelta() int {
	switch k {
	case FallingGift:
		return 10
	case FallingCookie:
		return 20
	case FallingCoal:
		return -10
	}
	return 0
}

// FallingItem is a transient entity in the catcher play area
type FallingItem struct {
	ID    int
	X     float64
	Y     float64
	Speed float64 // Pixels per reference frame
	Kind  FallingKind
}

// CatcherState is a snapshot of the catcher game
type CatcherState struct {
	SessionState
	Items []FallingItem
}

// SnowballState is a snapshot of the snowball (whack-a-mole) game
type SnowballState struct {
	SessionState
	Slots      int
	ActiveSlot int // NoSlot when no target is up
}

// NoSlot marks that no snowball target is currently up
const NoSlot = -1
