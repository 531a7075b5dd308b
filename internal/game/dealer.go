package game

// dealerStandValue is the total at which the dealer stops drawing. Soft 17
// stands; there is no hit-soft-17 variant here.
const dealerStandValue = 17

// Dealer is the automated participant. It makes no choices: it reveals its
// hole card once per round and then draws until reaching 17 or more.
type Dealer struct {
	Participant
}

// NewDealer creates a dealer with a single empty hand.
func NewDealer() *Dealer {
	return &Dealer{Participant: newParticipant()}
}

// ShouldHit reports whether the dealer's fixed play requires another card.
func (d *Dealer) ShouldHit() bool {
	return d.ActiveHand().Value() < dealerStandValue
}
