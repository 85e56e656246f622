package types

// Session is the unit of negotiation between exactly one buyer and one
// seller. The public prices hold caller-supplied provisional guesses until
// the corresponding revealed flag is true; only then are they trusted for
// matching.
type Session struct {
	ID     SessionID `json:"id"`
	Buyer  PartyID   `json:"buyer"`
	Seller PartyID   `json:"seller"` // zero until joined

	EncryptedBuyerPrice  CiphertextHandle `json:"encrypted_buyer_price"`
	EncryptedSellerPrice CiphertextHandle `json:"encrypted_seller_price"` // zero until joined

	PublicBuyerPrice  Price `json:"public_buyer_price"`
	PublicSellerPrice Price `json:"public_seller_price"`

	BuyerRevealed  bool `json:"buyer_revealed"`
	SellerRevealed bool `json:"seller_revealed"`
	DealMatched    bool `json:"deal_matched"`

	// CreatedUTC is the creation time in unix nanoseconds. Zero doubles as
	// the "no such session" sentinel.
	CreatedUTC int64 `json:"created_utc"`
}

// Exists reports whether the session record denotes a real session.
func (s Session) Exists() bool { return s.CreatedUTC != 0 }

// Joined reports whether a seller has been bound.
func (s Session) Joined() bool { return !s.Seller.IsZero() }
