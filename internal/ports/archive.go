package ports

// ArchiveEntry is one file added to a local bundle
type ArchiveEntry struct {
	Name string
	Data []byte
}

// Archiver bundles fetched artifacts into a single file on disk
type Archiver interface {
	// Write creates destPath containing entries. Nothing is left behind on failure.
	Write(destPath string, entries []ArchiveEntry) error
}
