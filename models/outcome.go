package models

// ResolveOutcome is the result of a confirm or cancel attempt on a transaction
type ResolveOutcome int

const (
	ResolveOK ResolveOutcome = iota
	ResolveNotFound
	ResolveWrongCaller
	ResolveNotPending
)

func (o ResolveOutcome) String() string {
	switch o {
	case ResolveOK:
		return "ok"
	case ResolveNotFound:
		return "not_found"
	case ResolveWrongCaller:
		return "wrong_caller"
	case ResolveNotPending:
		return "not_pending"
	default:
		return "unknown"
	}
}

// AdjustOutcome is the result of a favor balance adjustment
type AdjustOutcome int

const (
	AdjustOK AdjustOutcome = iota
	AdjustNotFound
)

func (o AdjustOutcome) String() string {
	switch o {
	case AdjustOK:
		return "ok"
	case AdjustNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
