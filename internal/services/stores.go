package services

import (
	"github.com/AnshRaj112/threads-backend/internal/storage"
)

// Stores bundles the storage contracts the services read from.
type Stores struct {
	Users       storage.UserStorage
	Threads     storage.ThreadStorage
	Communities storage.CommunityStorage
}

// PageLimits bounds page sizes accepted from callers.
type PageLimits struct {
	Default int64
	Max     int64
}

// clamp returns a 1-based page number and a size within limits, plus the
// number of documents to skip.
func (l PageLimits) clamp(page, size int64) (int64, int64, int64) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = l.Default
	}
	if l.Max > 0 && size > l.Max {
		size = l.Max
	}
	return page, size, (page - 1) * size
}
