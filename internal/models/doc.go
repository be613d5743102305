// Package models holds the persisted record types for the catalog:
// tracks discovered by the scanner, user accounts, playlists, and the
// join rows binding tracks into playlists.
package models
