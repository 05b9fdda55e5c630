package admin

import (
	"codeberg.org/aiheap/server/aiheap/searchhistory"
	"codeberg.org/aiheap/server/api/rest/pagination"
)

const (
	defaultHistoryPageSize = 50
	maxHistoryPageSize     = 200
)

type HistoryResponse struct {
	Entries    []searchhistory.Entry `json:"entries"`
	Pagination pagination.Meta       `json:"pagination"`
}

type ReembedResponse struct {
	Updated int `json:"updated"`
}
