package models

// PricedItem is a venue or package offer. Amounts are whole currency units.
type PricedItem struct {
	ID             string `bson:"id" json:"id"`
	Name           string `bson:"name" json:"name"`
	BasePrice      int64  `bson:"basePrice" json:"basePrice" validate:"gte=0"`
	BaseCapacity   int    `bson:"baseCapacity" json:"baseCapacity" validate:"gte=0"`
	ExtraGuestRate int64  `bson:"extraGuestRate" json:"extraGuestRate" validate:"gte=0"`
}

// QuoteLine is one item's independently computed cost.
type QuoteLine struct {
	ItemID      string `json:"itemId"`
	Name        string `json:"name"`
	ExtraGuests int    `json:"extraGuests"`
	Cost        int64  `json:"cost"`
}

// Quote sums the lines for one shared guest count.
type Quote struct {
	GuestCount int         `json:"guestCount"`
	Lines      []QuoteLine `json:"lines"`
	Total      int64       `json:"total"`
}
