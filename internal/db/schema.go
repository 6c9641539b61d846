package db

import "database/sql"

// EnsureSchema creates the tables this service owns. The unique key on
// booking_seats (route_id, journey_date, seat_code) is the storage-level
// guarantee that no seat is confirmed twice for the same route and day:
// concurrent commits that survive the advisory pre-check still collide here
// and surface as a duplicate-key error.
func EnsureSchema(db *sql.DB) error {
	ddls := []string{
		`CREATE TABLE IF NOT EXISTS users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	username VARCHAR(100) NOT NULL,
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(20) NOT NULL DEFAULT 'counter',
	city VARCHAR(100) NOT NULL DEFAULT '',
	counter_name VARCHAR(100) NOT NULL DEFAULT '',
	is_blocked TINYINT(1) NOT NULL DEFAULT 0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_username (username)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS routes (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(150) NOT NULL,
	departure_time VARCHAR(5) NOT NULL,
	seat_rows INT NOT NULL DEFAULT 10,
	seats_per_row INT NOT NULL DEFAULT 4,
	status VARCHAR(20) NOT NULL DEFAULT 'active',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_route_name (name)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS route_stops (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	route_id BIGINT NOT NULL,
	name VARCHAR(150) NOT NULL,
	stop_type VARCHAR(20) NOT NULL,
	arrival_time VARCHAR(5) NOT NULL DEFAULT '',
	position INT NOT NULL DEFAULT 0,
	UNIQUE KEY uniq_route_stop (route_id, name),
	KEY idx_route (route_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS route_fares (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	route_id BIGINT NOT NULL,
	from_stop VARCHAR(150) NOT NULL,
	to_stop VARCHAR(150) NOT NULL,
	amount BIGINT NOT NULL,
	UNIQUE KEY uniq_route_fare (route_id, from_stop, to_stop),
	KEY idx_route (route_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	reference VARCHAR(36) NOT NULL DEFAULT '',
	route_id BIGINT NOT NULL,
	user_id BIGINT NOT NULL,
	journey_date DATE NOT NULL,
	from_stop VARCHAR(150) NOT NULL,
	to_stop VARCHAR(150) NOT NULL,
	passenger_name VARCHAR(255) NOT NULL,
	passenger_phone VARCHAR(100) NOT NULL,
	seat_labels VARCHAR(255) NOT NULL,
	fare_per_seat BIGINT NOT NULL,
	total_fare BIGINT NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'confirmed',
	counter_name VARCHAR(100) NOT NULL DEFAULT '',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_route_date (route_id, journey_date),
	KEY idx_user (user_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS booking_seats (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	booking_id BIGINT NOT NULL,
	route_id BIGINT NOT NULL,
	journey_date DATE NOT NULL,
	seat_code VARCHAR(10) NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_route_date_seat (route_id, journey_date, seat_code),
	KEY idx_booking (booking_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	}

	for _, ddl := range ddls {
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}
