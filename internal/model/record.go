package model

type Record struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
