package models

import "time"

type AuditAction string

const (
	ActionCreate AuditAction = "create"
	ActionUpdate AuditAction = "update"
	ActionDelete AuditAction = "delete"
)

// AuditLogEntry records one admin mutation. Entries are never modified.
type AuditLogEntry struct {
	ID        string      `json:"_id" bson:"-"`
	Action    AuditAction `json:"action" bson:"action"`
	ItemID    string      `json:"item" bson:"item"`
	ItemName  string      `json:"itemName" bson:"itemName"`
	Admin     string      `json:"admin" bson:"admin"`
	Timestamp time.Time   `json:"timestamp" bson:"timestamp"`
}
