package tools

const (
	toolColumns = `t.id, t.slug, t.name, t.description, t.url, COALESCE(t.image_url, ''), t.pricing, t.rating, t.owner_id,
		ARRAY(SELECT tt.tag FROM tool_tags tt WHERE tt.tool_id = t.id ORDER BY tt.tag),
		t.vector IS NOT NULL, t.created_at, t.updated_at`

	queryGetBySlug = `
		SELECT ` + toolColumns + `
		FROM tools t
		WHERE t.slug = $1 AND t.deleted_at IS NULL
	`

	queryGetByID = `
		SELECT ` + toolColumns + `
		FROM tools t
		WHERE t.id = $1 AND t.deleted_at IS NULL
	`

	// hydrates candidates in the caller-supplied order so distance ranking
	// survives the round trip
	queryGetByIDs = `
		SELECT ` + toolColumns + `
		FROM tools t
		WHERE t.id = ANY($1::uuid[]) AND t.deleted_at IS NULL
		ORDER BY array_position($1::uuid[], t.id)
	`

	queryListNewest = `
		SELECT ` + toolColumns + `
		FROM tools t
		WHERE t.deleted_at IS NULL
		ORDER BY t.created_at DESC
		LIMIT $1
	`

	queryListTrending = `
		SELECT ` + toolColumns + `
		FROM tools t
		WHERE t.deleted_at IS NULL
		ORDER BY t.rating DESC, t.id
		LIMIT $1
	`

	queryListOwned = `
		SELECT ` + toolColumns + `
		FROM tools t
		WHERE t.owner_id = $1 AND t.deleted_at IS NULL
		ORDER BY t.created_at DESC
	`

	queryFindBySlugAnyState = `
		SELECT id FROM tools WHERE slug = $1
	`

	queryInsert = `
		INSERT INTO tools (id, slug, name, description, url, image_url, pricing, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	queryUpdate = `
		UPDATE tools
		SET slug = $1, name = $2, description = $3, url = $4, image_url = $5, pricing = $6, updated_at = NOW()
		WHERE id = $7 AND deleted_at IS NULL
		RETURNING id
	`

	querySoftDelete = `
		UPDATE tools
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	querySoftDeleteOwned = `
		UPDATE tools
		SET deleted_at = NOW()
		WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL
	`

	queryCount = `
		SELECT COUNT(*) FROM tools WHERE deleted_at IS NULL
	`

	queryUpdateVector = `
		UPDATE tools
		SET vector = $1
		WHERE id = $2
	`

	queryListMissingVectors = `
		SELECT ` + toolColumns + `
		FROM tools t
		WHERE t.vector IS NULL AND t.deleted_at IS NULL
		ORDER BY t.created_at
		LIMIT $1
	`

	// single nearest neighbor, used for the upfront query health check
	queryNearestDistance = `
		SELECT t.vector <=> $1 AS distance
		FROM tools t
		WHERE t.vector IS NOT NULL
		  AND t.deleted_at IS NULL
		ORDER BY distance, t.id
		LIMIT 1
	`
)
