package domain

import "time"

// ComplaintNote is a free-text note attached to a complaint by a user.
type ComplaintNote struct {
	ID          int64
	ComplaintID int64
	UserID      int64
	Note        string
	IsInternal  bool
	CreatedAt   time.Time
}

// ComplaintAttachment stores uploaded file metadata for a complaint. File
// contents live outside this service; only the reference is persisted.
type ComplaintAttachment struct {
	ID          int64
	ComplaintID int64
	Filename    string
	FilePath    string
	FileSize    int64
	MimeType    string
	CreatedAt   time.Time
}
