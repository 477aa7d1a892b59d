package request

// AddProfileRequest is the request body for adding a profile
type AddProfileRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

// LoginRequest is the request body for logging in to a profile
type LoginRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

// PointsRequest is the request body for earning or spending points
type PointsRequest struct {
	Amount int `json:"amount" validate:"min=0"`
}

// InventoryRequest is the request body for granting an item
type InventoryRequest struct {
	ItemID string `json:"item_id" validate:"required"`
}

// ChildProfile describes the child a plan is for
type ChildProfile struct {
	Name      string   `json:"name"`
	Age       int      `json:"age" validate:"min=0,max=18"`
	Gender    string   `json:"gender" validate:"omitempty,oneof=boy girl other"`
	Interests []string `json:"interests"`
}

// WishListItem is one wish. Price is free text; anything unparseable is 0.
type WishListItem struct {
	ID    string `json:"id"`
	Name  string `json:"name" validate:"required"`
	Price string `json:"price"`
}

// PlanRequest is the request body for gift suggestions
type PlanRequest struct {
	Child         ChildProfile   `json:"child"`
	WishList      []WishListItem `json:"wishlist" validate:"dive"`
	BehaviorScore int            `json:"behavior_score" validate:"min=1,max=5"`
	Budget        string         `json:"budget"`
}

// MoveRequest is the request body for a maze move
type MoveRequest struct {
	Direction string `json:"direction" validate:"required,oneof=up down left right"`
}

// CatchRequest is the request body for catching a falling item
type CatchRequest struct {
	ItemID int `json:"item_id" validate:"min=1"`
}

// WhackRequest is the request body for hitting a snowball slot
type WhackRequest struct {
	Slot int `json:"slot" validate:"min=0"`
}

// AnswerRequest is the request body for answering a trivia question
type AnswerRequest struct {
	Option int `json:"option" validate:"min=0"`
}

// RevealRequest is the request body for turning a memory card
type RevealRequest struct {
	CardID int `json:"card_id" validate:"min=0"`
}
