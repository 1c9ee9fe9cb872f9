package schedule

// Delivery selects the price column for a scheduled program.
type Delivery string

const (
	DeliveryInPerson Delivery = "in-person"
	DeliveryVirtual  Delivery = "virtual"
)

// ValidDelivery reports whether d is a known delivery method.
func ValidDelivery(d Delivery) bool {
	return d == DeliveryInPerson || d == DeliveryVirtual
}

// Item is one program as selected by the user.
type Item struct {
	ProgramID string   `json:"program_id"`
	Versions  []string `json:"versions"`
	Delivery  Delivery `json:"delivery"`
	Sessions  int      `json:"sessions"`
	Notes     string   `json:"notes,omitempty"`
}

// Schedule is an ordered collection of items; insertion order is display
// order. It lives only for the duration of one visit and is owned by the
// caller, never by the service.
type Schedule struct {
	Items []Item `json:"items"`
}

// Find returns the index of the item for a program, or -1.
func (s *Schedule) Find(programID string) int {
	for i := range s.Items {
		if s.Items[i].ProgramID == programID {
			return i
		}
	}
	return -1
}

// CompatFlag is the per-program compatibility marker shown on catalog cards.
type CompatFlag string

const (
	FlagAdded        CompatFlag = "added"
	FlagCompatible   CompatFlag = "compatible"
	FlagIncompatible CompatFlag = "incompatible"
)
