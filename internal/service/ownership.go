package service

import "github.com/mvaleed/quill/internal/domain"

// Owns reports whether p authored a. It is checked before an existing article
// is read, changed or removed.
func Owns(p domain.Principal, a *domain.Article) bool {
	return a != nil && !p.IsZero() && a.AuthorID == p.ID
}
