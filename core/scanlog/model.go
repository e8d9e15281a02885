package scanlog

import "time"

// ScanEvent is one row of the scan log.
type ScanEvent struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Barcode   string    `gorm:"column:barcode;type:varchar(128);not null" json:"barcode"`
	Accepted  bool      `gorm:"column:accepted;not null" json:"accepted"`
	SaveFile  string    `gorm:"column:save_file;type:varchar(255);index;not null;default:''" json:"save_file"`
	ScannedAt time.Time `gorm:"column:scanned_at;index;not null" json:"scanned_at"`
}

// TableName overrides the table name used by GORM.
func (ScanEvent) TableName() string {
	return "scan_events"
}
