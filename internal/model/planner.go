package model

// Gender of the child a plan is made for
type Gender string

const (
	GenderBoy   Gender = "boy"
	GenderGirl  Gender = "girl"
	GenderOther Gender = "other"
)

// ChildProfile describes the gift recipient
type ChildProfile struct {
	Name      string
	Age       int
	Gender    Gender
	Interests []string
}

// WishListItem is something the child asked for
type WishListItem struct {
	ID             string
	Name           string
	EstimatedPrice float64
}

// Gift is a selected present. IsSuggested is true for stash picks and false
// for wishlist picks.
type Gift struct {
	ID          string
	Name        string
	Price       float64
	Category    string
	IsSuggested bool
}

// PlanRequest holds everything needed to compute suggestions
type PlanRequest struct {
	Child         ChildProfile
	WishList      []WishListItem
	BehaviorScore int // 1 to 5
	Budget        float64
}

// PlanResult is the outcome of a planning session
type PlanResult struct {
	Gifts     []Gift
	Total     float64
	Remaining float64
	Message   string
}
