// Package model defines the data structures shared by the colfmt workflow,
// adapters and user interfaces.
package model

// Path represents a file system path.
type Path string

// File represents a source file on disk.
type File struct {
	// ShortPath is the path as it should be shown to the user, relative to the
	// working directory when possible.
	ShortPath Path
	FullPath  Path
	Hash      string
}

// Source is one Python file selected for processing.
type Source struct {
	Origin *File
}

// Display returns the path shown to users.
func (s Source) Display() string {
	if s.Origin == nil {
		return ""
	}

	if s.Origin.ShortPath != "" {
		return string(s.Origin.ShortPath)
	}

	return string(s.Origin.FullPath)
}
