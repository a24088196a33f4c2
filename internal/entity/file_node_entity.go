package entity

import (
	"path"
	"time"

	"github.com/google/uuid"
)

const (
	FileNodeTypeFile   = "file"
	FileNodeTypeFolder = "folder"
)

type FileNode struct {
	Id        uuid.UUID
	Path      string
	Name      string
	Type      string
	UpdatedAt time.Time
}

// ParentPath returns "" for top-level nodes.
func (n *FileNode) ParentPath() string {
	dir := path.Dir(n.Path)
	if dir == "." || dir == "/" {
		return ""
	}
	return dir
}
