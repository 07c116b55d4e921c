package migrations

import (
	"gorm.io/gorm"
)

// Migration001AddFeedIndexes adds composite indexes for the hot-path queries:
// 1. Public feed: WHERE is_approved AND NOT is_found ORDER BY created_at DESC
// 2. Conversation lookup: WHERE author_id = ? AND receiver_id = ?
// 3. Found list: ORDER BY found_at DESC
//
// All statements are idempotent (IF NOT EXISTS) for safe re-runs.
func Migration001AddFeedIndexes() Migration {
	return Migration{
		ID:   "001_add_feed_indexes",
		Name: "Add composite indexes for feed and conversation queries",
		Up: func(db *gorm.DB) error {
			stmts := []string{
				`CREATE INDEX IF NOT EXISTS idx_lost_items_feed
				 ON lost_items (is_approved, is_found, created_at DESC)`,
				`CREATE INDEX IF NOT EXISTS idx_messages_conversation
				 ON messages (author_id, receiver_id, created_at DESC)`,
				`CREATE INDEX IF NOT EXISTS idx_found_items_recency
				 ON found_items (found_at DESC)`,
			}
			for _, stmt := range stmts {
				if err := db.Exec(stmt).Error; err != nil {
					return err
				}
			}
			return nil
		},
		Down: func(db *gorm.DB) error {
			stmts := []string{
				`DROP INDEX IF EXISTS idx_lost_items_feed`,
				`DROP INDEX IF EXISTS idx_messages_conversation`,
				`DROP INDEX IF EXISTS idx_found_items_recency`,
			}
			for _, stmt := range stmts {
				if err := db.Exec(stmt).Error; err != nil {
					return err
				}
			}
			return nil
		},
	}
}
