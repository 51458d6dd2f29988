package users

const userColumns = `id, email, provider, provider_id, name, avatar_url, plan, free_usage, is_admin, created_at, updated_at`

const (
	queryFindOrCreateByProvider = `
		INSERT INTO users (provider, provider_id, email, name, avatar_url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (provider, provider_id)
		DO UPDATE SET
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			avatar_url = EXCLUDED.avatar_url,
			updated_at = NOW()
		RETURNING ` + userColumns

	queryFindByID = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	queryGetUsage = `
		SELECT plan, free_usage
		FROM users
		WHERE id = $1
	`

	queryIncrementFreeUsage = `
		UPDATE users
		SET free_usage = free_usage + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING free_usage
	`

	// the WHERE clause makes check and increment a single atomic step
	queryReserveFreeUsage = `
		UPDATE users
		SET free_usage = free_usage + 1, updated_at = NOW()
		WHERE id = $1 AND free_usage < $2
		RETURNING free_usage
	`

	queryReleaseFreeUsage = `
		UPDATE users
		SET free_usage = GREATEST(free_usage - 1, 0), updated_at = NOW()
		WHERE id = $1
	`

	querySetPlan = `
		UPDATE users
		SET plan = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + userColumns
)
