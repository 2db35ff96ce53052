package postgres

// SQL queries for freight records, time periods and analysis results.

const (
	// queryGetFreightRecords fetches records in an inclusive date range.
	// An empty filter array matches every value of that column.
	queryGetFreightRecords = `
		SELECT
			id, record_date, origin_id, destination_id, carrier_id,
			freight_charge, currency_code, transport_mode
		FROM freight_records
		WHERE record_date >= $1
		  AND record_date <= $2
		  AND (cardinality($3::text[]) = 0 OR origin_id = ANY($3))
		  AND (cardinality($4::text[]) = 0 OR destination_id = ANY($4))
		  AND (cardinality($5::text[]) = 0 OR carrier_id = ANY($5))
		  AND (cardinality($6::text[]) = 0 OR transport_mode = ANY($6))
		ORDER BY record_date ASC, id ASC
	`

	queryGetTimePeriod = `
		SELECT id, name, start_date, end_date, granularity, custom_interval_days
		FROM time_periods
		WHERE id = $1
	`

	// querySaveTimePeriod never rewrites a period that results may already reference.
	querySaveTimePeriod = `
		INSERT INTO time_periods (id, name, start_date, end_date, granularity, custom_interval_days)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`

	queryCreateResult = `
		INSERT INTO analysis_results (
			id, user_id, time_period_id, parameters, status,
			start_value, end_value, absolute_change, percentage_change, trend_direction,
			currency_code, output_format, results, error_message,
			calculated_at, is_cached, cache_expires_at, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	queryUpdateResult = `
		UPDATE analysis_results SET
			status = $2,
			start_value = $3,
			end_value = $4,
			absolute_change = $5,
			percentage_change = $6,
			trend_direction = $7,
			currency_code = $8,
			results = $9,
			error_message = $10,
			calculated_at = $11,
			is_cached = $12,
			cache_expires_at = $13,
			updated_at = $14
		WHERE id = $1
	`

	queryGetResult = `
		SELECT ` + resultColumns + `
		FROM analysis_results
		WHERE id = $1
	`

	queryDeleteResult = `DELETE FROM analysis_results WHERE id = $1`

	// queryListResults pages newest-first; an empty user id lists every owner.
	queryListResults = `
		SELECT ` + resultColumns + `
		FROM analysis_results
		WHERE ($1 = '' OR user_id = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	resultColumns = `
			id, user_id, time_period_id, parameters, status,
			start_value, end_value, absolute_change, percentage_change, trend_direction,
			currency_code, output_format, results, error_message,
			calculated_at, is_cached, cache_expires_at, created_at, updated_at`
)
