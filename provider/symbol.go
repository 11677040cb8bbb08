package provider

// Symbol is an ISO 4217 currency code
type Symbol string

const (
	USD Symbol = "USD"
	TRY Symbol = "TRY"
	RUB Symbol = "RUB"
)

func (s Symbol) String() string {
	return string(s)
}
