package queue

// StoreReady is published once the shared store has been seeded.
type StoreReady struct {
	Service string `json:"service"`
	Dialect string `json:"dialect"`
	Records int    `json:"records"`
}
