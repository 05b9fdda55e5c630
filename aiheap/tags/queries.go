package tags

const queryListPopular = `
SELECT name, tool_count, created_at
FROM tags
WHERE tool_count > 0
ORDER BY tool_count DESC, name ASC
LIMIT $1`

const querySearch = `
SELECT name, tool_count, created_at
FROM tags
WHERE name ILIKE '%' || $1 || '%' AND tool_count > 0
ORDER BY tool_count DESC, name ASC
LIMIT $2`

const queryUpsertCount = `
INSERT INTO tags (name, tool_count)
VALUES ($1, 1)
ON CONFLICT (name)
DO UPDATE SET tool_count = tags.tool_count + 1`

const queryDecrementCount = `
UPDATE tags
SET tool_count = GREATEST(tool_count - 1, 0)
WHERE name = $1`

const queryAttachTag = `
INSERT INTO tool_tags (tool_id, tag)
VALUES ($1, $2)
ON CONFLICT DO NOTHING`

const queryDetachTag = `
DELETE FROM tool_tags
WHERE tool_id = $1 AND tag = $2`

const queryListToolTags = `
SELECT tag
FROM tool_tags
WHERE tool_id = $1
ORDER BY tag ASC`
