package services

import (
	"database/sql"
	"fmt"
	"time"

	"rescue-dashboard/config"
	"rescue-dashboard/models"

	"github.com/apex/log"
	_ "github.com/go-sql-driver/mysql"
)

// Schema contains the database schema for the dashboard service.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
    id INT AUTO_INCREMENT PRIMARY KEY,
    full_name VARCHAR(256) NOT NULL,
    email VARCHAR(256) NOT NULL UNIQUE,
    phone VARCHAR(64),
    role ENUM('user', 'rescue_team', 'admin') DEFAULT 'user',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    INDEX idx_role (role)
);

CREATE TABLE IF NOT EXISTS reports (
    id INT AUTO_INCREMENT PRIMARY KEY,
    reporter_id INT,
    status VARCHAR(32) NOT NULL DEFAULT 'received',
    ` + "`condition`" + ` VARCHAR(256) NOT NULL,
    description TEXT,
    location VARCHAR(512) NOT NULL,
    latitude DOUBLE NULL,
    longitude DOUBLE NULL,
    contact_name VARCHAR(256) NOT NULL,
    contact_phone VARCHAR(64) NOT NULL,
    priority ENUM('low', 'medium', 'high') DEFAULT 'medium',
    photo_url TEXT NULL,
    assigned_team_id INT NULL,
    field_review TEXT NULL,
    rescued_location VARCHAR(512) NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NULL DEFAULT NULL,
    INDEX idx_status (status),
    INDEX idx_reporter (reporter_id),
    INDEX idx_assigned_team (assigned_team_id)
);
`

const reportColumns = "r.id, r.status, r.`condition`, r.description, r.location, " +
	"r.latitude, r.longitude, r.contact_name, r.contact_phone, r.priority, " +
	"r.photo_url, t.full_name, t.phone, r.field_review, r.rescued_location, " +
	"r.reporter_id, r.created_at, r.updated_at"

const reportSelect = "SELECT " + reportColumns +
	" FROM reports r LEFT JOIN users t ON r.assigned_team_id = t.id"

// DatabaseService manages database connections and queries for reports and
// users.
type DatabaseService struct {
	db *sql.DB
}

// buildDSN assembles the MySQL connection string. multiStatements is needed
// because the schema bootstrap executes several statements in one Exec.
func buildDSN(cfg *config.Config) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&multiStatements=true",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
}

// NewDatabaseService creates a new database service and waits for the
// database to come up.
func NewDatabaseService(cfg *config.Config) (*DatabaseService, error) {
	db, err := sql.Open("mysql", buildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection with exponential backoff retry
	var waitInterval time.Duration = 1 * time.Second
	for {
		if err := db.Ping(); err == nil {
			break
		} else {
			log.Warnf("Database connection failed, retrying in %v: %v", waitInterval, err)
		}
		time.Sleep(waitInterval)
		waitInterval *= 2
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Infof("Database connection established to %s:%s/%s", cfg.DBHost, cfg.DBPort, cfg.DBName)

	return &DatabaseService{db: db}, nil
}

// NewDatabaseServiceWithDB wraps an existing connection; used by tests.
func NewDatabaseServiceWithDB(db *sql.DB) *DatabaseService {
	return &DatabaseService{db: db}
}

// Close closes the database connection
func (s *DatabaseService) Close() error {
	return s.db.Close()
}

// InitializeSchema creates the tables if they do not exist yet.
func (s *DatabaseService) InitializeSchema() error {
	if _, err := s.db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// scanReport scans one row of a reportSelect query.
func scanReport(rows *sql.Rows) (models.Report, error) {
	var r models.Report
	var latitude, longitude sql.NullFloat64
	var photoURL, teamName, teamPhone, fieldReview, rescuedLocation sql.NullString
	var reporterID sql.NullInt64
	var createdAt time.Time
	var updatedAt sql.NullTime

	err := rows.Scan(
		&r.ID,
		&r.Status,
		&r.Condition,
		&r.Description,
		&r.Location,
		&latitude,
		&longitude,
		&r.ContactName,
		&r.ContactPhone,
		&r.Priority,
		&photoURL,
		&teamName,
		&teamPhone,
		&fieldReview,
		&rescuedLocation,
		&reporterID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return models.Report{}, fmt.Errorf("failed to scan report: %w", err)
	}

	if latitude.Valid {
		r.Latitude = &latitude.Float64
	}
	if longitude.Valid {
		r.Longitude = &longitude.Float64
	}
	if photoURL.Valid {
		r.PhotoURL = &photoURL.String
	}
	if teamName.Valid {
		r.AssignedTeamName = &teamName.String
	}
	if teamPhone.Valid {
		r.AssignedTeamPhone = &teamPhone.String
	}
	if fieldReview.Valid {
		r.FieldReview = &fieldReview.String
	}
	if rescuedLocation.Valid {
		r.RescuedLocation = &rescuedLocation.String
	}
	if reporterID.Valid {
		r.ReporterID = reporterID.Int64
	}
	r.CreatedAt = createdAt.Format(time.RFC3339)
	if updatedAt.Valid {
		r.UpdatedAt = updatedAt.Time.Format(time.RFC3339)
	}

	return r, nil
}

func (s *DatabaseService) queryReports(query string, args ...interface{}) ([]models.Report, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	reports := []models.Report{}
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reports: %w", err)
	}
	return reports, nil
}

// GetAllReports returns every report, oldest first. Display ordering is the
// filter engine's job, not the database's.
func (s *DatabaseService) GetAllReports() ([]models.Report, error) {
	return s.queryReports(reportSelect + " ORDER BY r.id ASC")
}

// GetReportsByReporter returns the reports filed by one citizen.
func (s *DatabaseService) GetReportsByReporter(reporterID int64) ([]models.Report, error) {
	return s.queryReports(reportSelect+" WHERE r.reporter_id = ? ORDER BY r.id ASC", reporterID)
}

// GetReportByID returns a single report or sql.ErrNoRows.
func (s *DatabaseService) GetReportByID(id int64) (models.Report, error) {
	reports, err := s.queryReports(reportSelect+" WHERE r.id = ?", id)
	if err != nil {
		return models.Report{}, err
	}
	if len(reports) == 0 {
		return models.Report{}, sql.ErrNoRows
	}
	return reports[0], nil
}

// CreateReport inserts a new report with status forced to received and
// returns the stored row.
func (s *DatabaseService) CreateReport(args *models.CreateReportArgs, reporterID int64) (models.Report, error) {
	priority := args.Priority
	if priority == "" {
		priority = "medium"
	}

	result, err := s.db.Exec(
		"INSERT INTO reports (reporter_id, status, `condition`, description, location, "+
			"latitude, longitude, contact_name, contact_phone, priority, photo_url) "+
			"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		reporterID, StatusReceived, args.Condition, args.Description, args.Location,
		args.Latitude, args.Longitude, args.ContactName, args.ContactPhone, priority, args.PhotoURL)
	if err != nil {
		return models.Report{}, fmt.Errorf("failed to insert report: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.Report{}, fmt.Errorf("failed to get inserted report id: %w", err)
	}
	return s.GetReportByID(id)
}

// UpdateReportStatus applies a status mutation. Field review and rescued
// location are only overwritten when the request carries them. Returns the
// updated row.
func (s *DatabaseService) UpdateReportStatus(id int64, args *models.StatusUpdateArgs) (models.Report, error) {
	if _, err := s.GetReportByID(id); err != nil {
		return models.Report{}, err
	}

	result, err := s.db.Exec(
		"UPDATE reports SET status = ?, "+
			"field_review = COALESCE(?, field_review), "+
			"rescued_location = COALESCE(?, rescued_location), "+
			"updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		args.Status, args.FieldReview, args.RescuedLocation, id)
	if err != nil {
		return models.Report{}, fmt.Errorf("failed to update report %d: %w", id, err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows != 1 {
		log.Warnf("Update of report %d affected %d rows", id, rows)
	}

	return s.GetReportByID(id)
}

// GetAllUsers returns every account for the admin view.
func (s *DatabaseService) GetAllUsers() ([]models.User, error) {
	rows, err := s.db.Query(
		"SELECT id, full_name, email, phone, role, created_at FROM users ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		var phone sql.NullString
		var createdAt time.Time
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email, &phone, &u.Role, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		if phone.Valid {
			u.Phone = phone.String
		}
		u.CreatedAt = createdAt.Format(time.RFC3339)
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

// GetDashboardStats computes the admin dashboard counters. The in-progress
// bucket collapses active and in_progress, matching the lifecycle grouping.
func (s *DatabaseService) GetDashboardStats() (models.StatsResponse, error) {
	var stats models.StatsResponse

	row := s.db.QueryRow(
		"SELECT COUNT(*), " +
			"COALESCE(SUM(status = 'received'), 0), " +
			"COALESCE(SUM(status IN ('active', 'in_progress')), 0), " +
			"COALESCE(SUM(status = 'resolved'), 0) FROM reports")
	if err := row.Scan(&stats.Reports.Total, &stats.Reports.Received,
		&stats.Reports.InProgress, &stats.Reports.Resolved); err != nil {
		return stats, fmt.Errorf("failed to scan report stats: %w", err)
	}

	row = s.db.QueryRow(
		"SELECT COUNT(*), COALESCE(SUM(role = 'rescue_team'), 0) FROM users")
	if err := row.Scan(&stats.Users.Total, &stats.Users.Volunteers); err != nil {
		return stats, fmt.Errorf("failed to scan user stats: %w", err)
	}

	return stats, nil
}
