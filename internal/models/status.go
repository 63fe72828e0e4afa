package models

// Status is the order lifecycle state. Values match the storefront wire
// vocabulary and the stored text in the orders table.
type Status string

const (
	StatusPending    Status = "pendiente"
	StatusProcessing Status = "procesando"
	StatusShipped    Status = "enviado"
	StatusDelivered  Status = "entregado"
	StatusCancelled  Status = "cancelado"
)

// statusRank orders the forward chain. Cancelled is outside the chain.
var statusRank = map[Status]int{
	StatusPending:    0,
	StatusProcessing: 1,
	StatusShipped:    2,
	StatusDelivered:  3,
}

// Valid reports whether s is one of the known order statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo enforces the status chain: transitions move forward along
// pendiente -> procesando -> enviado -> entregado, or jump to cancelado from
// any non-terminal state. Re-applying the current status is allowed as a
// no-op. Terminal states accept nothing but their own value.
func (s Status) CanTransitionTo(next Status) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	if s.Terminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	return statusRank[next] > statusRank[s]
}

func (s Status) String() string {
	return string(s)
}
