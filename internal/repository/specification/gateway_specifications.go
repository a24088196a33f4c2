package specification

import "gorm.io/gorm"

// ByPath matches a file node by its full path.
type ByPath struct {
	Path string
}

func (s ByPath) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("path = ?", s.Path)
}

// ByKind filters request logs by kind.
type ByKind struct {
	Kind string
}

func (s ByKind) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("kind = ?", s.Kind)
}

// ByNamespace filters embeddings by namespace.
type ByNamespace struct {
	Namespace string
}

func (s ByNamespace) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("namespace = ?", s.Namespace)
}

// Newest orders by the given column descending and caps the result.
func Newest(field string, limit int) []Specification {
	return []Specification{
		OrderBy{Field: field, Desc: true},
		Pagination{Limit: limit},
	}
}
