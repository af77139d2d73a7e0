package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// DateLayout is the calendar-date format used for snapshot keys. ISO dates
// sort lexicographically, which the range queries rely on.
const DateLayout = "2006-01-02"

// SequenceStat holds outreach counters for a single sequence, tagged with the
// role it sources for and the operator who sends it.
type SequenceStat struct {
	ID        string  `json:"id,omitempty"`
	Sent      int     `json:"sent"`
	Opened    int     `json:"opened"`
	Replied   int     `json:"replied"`
	Bounced   int     `json:"bounced"`
	ReplyRate float64 `json:"reply_rate"`
	Role      string  `json:"role"`
	Sender    string  `json:"sender"`
}

// StatTotals aggregates outreach counters across sequences.
type StatTotals struct {
	Sent      int     `json:"sent"`
	Opened    int     `json:"opened"`
	Replied   int     `json:"replied"`
	Bounced   int     `json:"bounced"`
	ReplyRate float64 `json:"reply_rate"`
}

// OutreachStats is the per-day sourcing aggregate persisted as a snapshot.
// Counters are cumulative as of the snapshot date, not daily deltas; the trend
// engine depends on that invariant.
type OutreachStats struct {
	SnapshotDate string                  `json:"snapshot_date,omitempty"`
	BySequence   map[string]SequenceStat `json:"by_sequence"`
	ByRole       map[string]StatTotals   `json:"by_role"`
	BySender     map[string]StatTotals   `json:"by_sender"`
	Totals       StatTotals              `json:"totals"`
	Notes        string                  `json:"notes,omitempty"`
}

// StatsPayload stores an OutreachStats value as a JSON column.
type StatsPayload OutreachStats

// Value implements the driver.Valuer interface for database serialization.
// Parameters: none.
// Returns:
//   - driver.Value: JSON-encoded payload.
//   - error: non-nil if marshaling fails.
func (p StatsPayload) Value() (driver.Value, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
// Parameters:
//   - value: raw database value to decode.
// Returns:
//   - error: non-nil if decoding fails or the type is unexpected.
func (p *StatsPayload) Scan(value interface{}) error {
	if value == nil {
		*p = StatsPayload{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("failed to scan StatsPayload")
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, p)
}

// OutreachSnapshot is the persisted date-keyed sourcing aggregate. One row per
// calendar day; resubmitting the same date replaces the payload.
type OutreachSnapshot struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	SnapshotDate string       `gorm:"type:date;not null;uniqueIndex:idx_outreach_snapshots_date" json:"snapshot_date"`
	Data         StatsPayload `gorm:"type:text;not null" json:"data"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// TableName returns the database table name for OutreachSnapshot.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (OutreachSnapshot) TableName() string {
	return "outreach_snapshots"
}

// SequenceStatRecord is the persisted per-sequence counter row for one date.
type SequenceStatRecord struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SnapshotDate string    `gorm:"type:date;not null;index:idx_sequence_stats_date_name,unique" json:"snapshot_date"`
	SequenceName string    `gorm:"type:text;not null;index:idx_sequence_stats_date_name,unique" json:"sequence_name"`
	Role         string    `gorm:"type:text;not null" json:"role"`
	Sender       string    `gorm:"type:text;not null" json:"sender"`
	Sent         int       `gorm:"default:0" json:"sent"`
	Opened       int       `gorm:"default:0" json:"opened"`
	Replied      int       `gorm:"default:0" json:"replied"`
	Bounced      int       `gorm:"default:0" json:"bounced"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName returns the database table name for SequenceStatRecord.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (SequenceStatRecord) TableName() string {
	return "sequence_stats"
}
