package creations

const creationColumns = `id, user_id, prompt, content, type, publish, likes, created_at, updated_at`

const (
	queryCreate = `
		INSERT INTO creations (user_id, prompt, content, type, publish)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + creationColumns

	queryCountByUser = `
		SELECT COUNT(*) FROM creations WHERE user_id = $1
	`

	queryListByUser = `
		SELECT ` + creationColumns + `
		FROM creations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	queryCountPublished = `
		SELECT COUNT(*) FROM creations WHERE publish = true
	`

	queryListPublished = `
		SELECT ` + creationColumns + `
		FROM creations
		WHERE publish = true
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	// RETURNING sees the updated array, so the result is the new like state
	queryToggleLike = `
		UPDATE creations
		SET likes = CASE
				WHEN $2::text = ANY(likes) THEN array_remove(likes, $2::text)
				ELSE array_append(likes, $2::text)
			END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING $2::text = ANY(likes)
	`
)
