package locales

import (
	_ "embed"
	"encoding/json"

	log "github.com/sirupsen/logrus"
)

//go:embed locales.json
var localesJSON []byte

// Texts holds every user-facing string for one language. Entries ending in
// a verb like %s or %d are fmt format strings.
type Texts struct {
	Welcome            string `json:"welcome"`
	StartMenuLabel     string `json:"start_menu_label"`
	NoStockFound       string `json:"no_stock_found"`
	NoMatch            string `json:"no_match"`
	SearchLine         string `json:"search_line"`
	SearchFooter       string `json:"search_footer"`
	InvalidNumber      string `json:"invalid_number"`
	InvalidIndex       string `json:"invalid_index"`
	InvalidChoice      string `json:"invalid_choice"`
	InvalidCount       string `json:"invalid_count"`
	ProductDetail      string `json:"product_detail"`
	ProductUpdated     string `json:"product_updated"`
	ProductToList      string `json:"product_to_list"`
	UpdateRejected     string `json:"update_rejected"`
	ChooseQuantity     string `json:"choose_quantity"`
	AskGuestName       string `json:"ask_guest_name"`
	AskGuestDelete     string `json:"ask_guest_delete"`
	GuestListHeader    string `json:"guest_list_header"`
	GuestListLine      string `json:"guest_list_line"`
	GuestEditHint      string `json:"guest_edit_hint"`
	GuestEditFormat    string `json:"guest_edit_format"`
	GuestAdded         string `json:"guest_added"`
	GuestExists        string `json:"guest_exists"`
	GuestRemoved       string `json:"guest_removed"`
	GuestNotFound      string `json:"guest_notfound"`
	GuestModified      string `json:"guest_modified"`
	GuestStoreError    string `json:"guest_store_error"`
	NoGuests           string `json:"no_guests"`
	AskNbGuests        string `json:"ask_nb_guests"`
	SelectGuests       string `json:"select_guests"`
	GuestSelected      string `json:"guest_selected"`
	SelectionFull      string `json:"selection_full"`
	GuestUnknown       string `json:"guest_unknown"`
	GuestsChosen       string `json:"guests_chosen"`
	AskNote            string `json:"ask_note"`
	AskNoteNoGuests    string `json:"ask_note_no_guests"`
	AskNoteNoSelection string `json:"ask_note_no_selection"`
	StockPreviewHeader string `json:"stock_preview_header"`
	StockPreviewLine   string `json:"stock_preview_line"`
	RecipeGeneration   string `json:"recipe_generation"`
	RecipeError        string `json:"recipe_error"`
	Goodbye            string `json:"goodbye"`
	NoBarcode          string `json:"no_barcode"`
	UnknownProduct     string `json:"unknown_product"`
	UnknownDate        string `json:"unknown_date"`
	PromptIntro        string `json:"prompt_intro"`
	PromptStockHeader  string `json:"prompt_stock_header"`
	PromptStockLine    string `json:"prompt_stock_line"`
	PromptUnsupported  string `json:"prompt_unsupported"`
	PromptNoGuests     string `json:"prompt_no_guests"`
	PromptNote         string `json:"prompt_note"`
	PromptRequirements string `json:"prompt_requirements"`
	Buttons            struct {
		CreateGuest string `json:"create_guest"`
		DeleteGuest string `json:"delete_guest"`
		EditGuest   string `json:"edit_guest"`
		Recipe      string `json:"recipe"`
		Quit        string `json:"quit"`
		Add         string `json:"add"`
		Remove      string `json:"remove"`
		List        string `json:"list"`
		QuitDetail  string `json:"quit_detail"`
		None        string `json:"none"`
		Done        string `json:"done"`
	} `json:"buttons"`
}

var all map[string]*Texts

func init() {
	if err := json.Unmarshal(localesJSON, &all); err != nil {
		log.Fatalf("Failed to parse locales.json: %v", err)
	}
}

// Supported reports whether lang is a known language code.
func Supported(lang string) bool {
	_, ok := all[lang]
	return ok
}

// Get returns the string table for lang, falling back to French.
func Get(lang string) *Texts {
	if t, ok := all[lang]; ok {
		return t
	}
	return all["FR"]
}
