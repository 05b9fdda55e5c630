package tools

import (
	"codeberg.org/aiheap/server/aiheap/tools"
)

const (
	defaultListLimit = 20
	maxListLimit     = 50
)

type ListResponse struct {
	Tools []tools.Tool `json:"tools"`
}

type CountResponse struct {
	Count int `json:"count"`
}

type UpsertResponse struct {
	Tool *tools.Tool `json:"tool"`
}
