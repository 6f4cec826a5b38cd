package models

// State identifies the step a chat's conversation is currently at.
type State int

const (
	StateMainMenu State = iota
	StateCreateGuest
	StateDeleteGuest
	StateEditGuest
	StateRecipeGuestCount
	StateRecipeGuestSelect
	StateRecipeNote
	StateSearchResults
	StateSearchDetail
	StateSearchQuantity
)

func (s State) String() string {
	switch s {
	case StateMainMenu:
		return "main_menu"
	case StateCreateGuest:
		return "create_guest"
	case StateDeleteGuest:
		return "delete_guest"
	case StateEditGuest:
		return "edit_guest"
	case StateRecipeGuestCount:
		return "recipe_guest_count"
	case StateRecipeGuestSelect:
		return "recipe_guest_select"
	case StateRecipeNote:
		return "recipe_note"
	case StateSearchResults:
		return "search_results"
	case StateSearchDetail:
		return "search_detail"
	case StateSearchQuantity:
		return "search_quantity"
	}
	return "unknown"
}

// Guest is one diner on file, with the foods they cannot eat.
type Guest struct {
	Name             string
	UnsupportedFoods string
}

// StockItem is one line of the Grocy stock. Barcodes is never empty after
// normalization; a sentinel label replaces an empty barcode list.
type StockItem struct {
	ProductID      string
	ProductName    string
	Amount         float64
	BestBeforeDate string
	Barcodes       []string
	PictureURL     string
}

// Session holds the conversation state of a single chat. It is created on
// first contact or /start and dropped when the conversation ends.
type Session struct {
	State           State
	SearchResults   []StockItem
	SelectedProduct *StockItem
	PendingAction   string // "add" or "remove"
	NbGuests        int
	GuestPool       []string
	SelectedGuests  []string
	Note            string
}
