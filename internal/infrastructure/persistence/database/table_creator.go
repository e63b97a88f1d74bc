package database

import (
	"database/sql"
	"fmt"
)

// TableCreator handles the creation of the database schema.
type TableCreator struct{}

// NewTableCreator creates a new TableCreator.
func NewTableCreator() *TableCreator {
	return &TableCreator{}
}

// CreateSchema executes all necessary queries to build the tables and indexes.
// Every statement is idempotent so it is safe to run on each startup.
func (tc *TableCreator) CreateSchema(db *sql.DB) error {
	for _, tableSQL := range tables {
		if _, err := db.Exec(tableSQL); err != nil {
			return fmt.Errorf("failed to create table for query [%s]: %w", tableSQL, err)
		}
	}

	for _, indexSQL := range indexes {
		if _, err := db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create index for query [%s]: %w", indexSQL, err)
		}
	}
	return nil
}

var tables = []string{
	// Raw analytics events. created_at is stored as UTC RFC3339 text so that
	// lexicographic ordering matches chronological ordering and the heatmap
	// month filter can use a plain prefix match.
	`CREATE TABLE IF NOT EXISTS page_views (id TEXT PRIMARY KEY, page_path TEXT NOT NULL, page_title TEXT, referrer TEXT, user_agent TEXT, device_type TEXT, country TEXT, city TEXT, session_id TEXT, visitor_id TEXT, created_at TEXT NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS clicks (id TEXT PRIMARY KEY, page_path TEXT NOT NULL, x_pct REAL, y_pct REAL, element_type TEXT, element_text TEXT, element_id TEXT, element_class TEXT, viewport_width REAL, viewport_height REAL, scroll_depth_pct REAL, section_id TEXT, session_id TEXT, visitor_id TEXT, created_at TEXT NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS hovers (id TEXT PRIMARY KEY, page_path TEXT NOT NULL, element_type TEXT, element_id TEXT, section_id TEXT, duration_ms REAL, session_id TEXT, visitor_id TEXT, created_at TEXT NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS likes (id TEXT PRIMARY KEY, article_id TEXT NOT NULL, session_id TEXT, created_at TEXT NOT NULL)`,

	// Legacy catch-all event table, kept as the secondary write target when a
	// primary analytics insert fails.
	`CREATE TABLE IF NOT EXISTS site_events (id TEXT PRIMARY KEY, event_type TEXT NOT NULL, page_path TEXT, payload TEXT, created_at TEXT NOT NULL)`,

	// Pre-aggregated stats, written by an external job and read-only here.
	`CREATE TABLE IF NOT EXISTS daily_stats (date TEXT PRIMARY KEY, total_views INTEGER NOT NULL DEFAULT 0, unique_visitors INTEGER NOT NULL DEFAULT 0, bounce_rate REAL NOT NULL DEFAULT 0, avg_session_duration_seconds REAL NOT NULL DEFAULT 0)`,
	`CREATE TABLE IF NOT EXISTS top_pages (path TEXT PRIMARY KEY, title TEXT, view_count INTEGER NOT NULL DEFAULT 0)`,

	// Content directory.
	`CREATE TABLE IF NOT EXISTS articles (id TEXT PRIMARY KEY, title TEXT NOT NULL, slug TEXT NOT NULL UNIQUE, excerpt TEXT, body TEXT, thumbnail_path TEXT, gallery_paths TEXT, video_path TEXT, document_paths TEXT, tag_ids TEXT, is_featured INTEGER NOT NULL DEFAULT 0, position INTEGER NOT NULL DEFAULT 0, created TEXT NOT NULL, changed TEXT)`,
	`CREATE TABLE IF NOT EXISTS tags (id TEXT PRIMARY KEY, name TEXT NOT NULL, slug TEXT NOT NULL UNIQUE, position INTEGER NOT NULL DEFAULT 0)`,
	`CREATE TABLE IF NOT EXISTS partners (id TEXT PRIMARY KEY, name TEXT NOT NULL, logo_path TEXT, site_url TEXT, position INTEGER NOT NULL DEFAULT 0)`,
	`CREATE TABLE IF NOT EXISTS team_members (id TEXT PRIMARY KEY, name TEXT NOT NULL, role TEXT, bio TEXT, photo_path TEXT, position INTEGER NOT NULL DEFAULT 0)`,
	`CREATE TABLE IF NOT EXISTS services (id TEXT PRIMARY KEY, title TEXT NOT NULL, summary TEXT, description TEXT, icon TEXT, position INTEGER NOT NULL DEFAULT 0)`,
	`CREATE TABLE IF NOT EXISTS technologies (id TEXT PRIMARY KEY, name TEXT NOT NULL, category TEXT, logo_path TEXT, position INTEGER NOT NULL DEFAULT 0)`,
	`CREATE TABLE IF NOT EXISTS faqs (id TEXT PRIMARY KEY, question TEXT NOT NULL, answer TEXT, position INTEGER NOT NULL DEFAULT 0)`,

	// Chat + contact.
	`CREATE TABLE IF NOT EXISTS chat_transcripts (session_id TEXT PRIMARY KEY, messages TEXT NOT NULL, created TEXT NOT NULL, changed TEXT)`,
	`CREATE TABLE IF NOT EXISTS contact_messages (id TEXT PRIMARY KEY, name TEXT NOT NULL, email TEXT NOT NULL, company TEXT, message TEXT NOT NULL, created_at TEXT NOT NULL)`,
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_page_views_created_at ON page_views(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_clicks_page_path ON clicks(page_path)`,
	`CREATE INDEX IF NOT EXISTS idx_clicks_created_at ON clicks(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_hovers_page_path ON hovers(page_path)`,
	`CREATE INDEX IF NOT EXISTS idx_likes_article_id ON likes(article_id)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_position ON articles(position)`,
	`CREATE INDEX IF NOT EXISTS idx_top_pages_view_count ON top_pages(view_count)`,
}
