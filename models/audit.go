// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// AuditOperation names the privileged operation recorded by an audit entry.
type AuditOperation string

const (
	AuditOperationCreate  AuditOperation = "create"
	AuditOperationRecover AuditOperation = "recover"
	AuditOperationSign    AuditOperation = "sign"
)

// AuditLogEntry is an append-only record of one create, recover or sign
// attempt. WalletID is empty when the attempt failed before a wallet could be
// identified.
type AuditLogEntry struct {
	ID         string            `json:"id"`
	WalletID   string            `json:"wallet_id,omitempty"`
	Operation  AuditOperation    `json:"operation"`
	Timestamp  time.Time         `json:"timestamp"`
	PlatformID string            `json:"platform_id"`
	Network    Network           `json:"network,omitempty"`
	Success    bool              `json:"success"`
	Error      string            `json:"error,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}
