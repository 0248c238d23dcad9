package store

// Cypher for the Memgraph backend. The claim upsert relies on MERGE being
// atomic per canonical_key: two jobs discovering the same claim concurrently
// race only on updated_at, createdAt and status are fixed ON CREATE.
const (
	upsertClaimQuery = `
		MERGE (c:Claim {canonical_key: $key})
		ON CREATE SET c.id = $id,
			c.text = $text,
			c.scope = $scope,
			c.timeframe = $timeframe,
			c.status = 'OPEN',
			c.created_at = $now,
			c.updated_at = $now
		ON MATCH SET c.updated_at = $now
		RETURN c.id AS id, c.text AS text, c.scope AS scope,
			c.timeframe AS timeframe, c.status AS status,
			c.created_at AS created_at, c.updated_at AS updated_at
	`

	setClaimStatusQuery = `
		MATCH (c:Claim {canonical_key: $key})
		SET c.status = $status, c.updated_at = $now
		RETURN c.canonical_key AS canonical_key
	`

	getClaimQuery = `
		MATCH (c:Claim {canonical_key: $key})
		RETURN c.id AS id, c.text AS text, c.scope AS scope,
			c.timeframe AS timeframe, c.status AS status,
			c.created_at AS created_at, c.updated_at AS updated_at
	`

	createJobQuery = `
		MERGE (j:Job {job_id: $job_id})
		ON CREATE SET j.contribution_id = $contribution_id,
			j.text = $text,
			j.language = $language,
			j.topic = $topic,
			j.scope = $scope,
			j.timeframe = $timeframe,
			j.status = 'PENDING',
			j.tokens_used = 0,
			j.duration_ms = 0,
			j.error = '',
			j.results = '',
			j.created_at = $now,
			j.updated_at = $now
		ON MATCH SET
			j.text = CASE WHEN j.status = 'PENDING' THEN $text ELSE j.text END,
			j.language = CASE WHEN j.status = 'PENDING' THEN $language ELSE j.language END,
			j.topic = CASE WHEN j.status = 'PENDING' THEN $topic ELSE j.topic END,
			j.scope = CASE WHEN j.status = 'PENDING' THEN $scope ELSE j.scope END,
			j.timeframe = CASE WHEN j.status = 'PENDING' THEN $timeframe ELSE j.timeframe END,
			j.updated_at = CASE WHEN j.status = 'PENDING' THEN $now ELSE j.updated_at END
		RETURN ` + jobReturnFields

	getJobQuery = `
		MATCH (j:Job {job_id: $job_id})
		RETURN ` + jobReturnFields

	transitionJobQuery = `
		MATCH (j:Job {job_id: $job_id})
		WHERE j.status IN $allowed
		SET j.status = $to, j.updated_at = $now
		RETURN ` + jobReturnFields

	setJobErrorQuery = `
		MATCH (j:Job {job_id: $job_id})
		SET j.error = $error, j.updated_at = $now
		RETURN j.job_id AS job_id
	`

	setJobMetricsQuery = `
		MATCH (j:Job {job_id: $job_id})
		SET j.tokens_used = $tokens_used, j.duration_ms = $duration_ms, j.updated_at = $now
		RETURN j.job_id AS job_id
	`

	saveResultsQuery = `
		MATCH (j:Job {job_id: $job_id})
		SET j.results = $results
		RETURN j.job_id AS job_id
	`

	getResultsQuery = `
		MATCH (j:Job {job_id: $job_id})
		RETURN j.results AS results
	`

	jobReturnFields = `j.job_id AS job_id, j.contribution_id AS contribution_id,
		j.text AS text, j.language AS language, j.topic AS topic,
		j.scope AS scope, j.timeframe AS timeframe, j.status AS status,
		j.tokens_used AS tokens_used, j.duration_ms AS duration_ms,
		j.error AS error, j.created_at AS created_at, j.updated_at AS updated_at`
)
