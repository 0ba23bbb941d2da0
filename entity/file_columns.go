package entity

// FileColumns holds the attribute values shown for one file in the list view
type FileColumns struct {
	Path       string
	Name       string
	Size       int64
	FormatID   string
	FormatName string
	FormatURI  string
	Checksum   string
	Algorithm  DigestAlgorithm
}
