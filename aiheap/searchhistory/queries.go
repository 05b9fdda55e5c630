package searchhistory

const queryInsert = `
INSERT INTO search_history (
	id, query, original_query, refined_query, tags, pricing, result_count, user_id
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING created_at`

const queryList = `
SELECT id, query, original_query, refined_query, tags, pricing, result_count, user_id, created_at
FROM search_history
ORDER BY created_at DESC, id
LIMIT $1 OFFSET $2`

const queryCount = `
SELECT COUNT(*)
FROM search_history`
