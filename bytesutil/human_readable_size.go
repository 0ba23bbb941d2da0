package bytesutil

import "fmt"

const (
	KIBI int64 = 1024        // 1024 power 1 (2 power 10)
	MEBI       = KIBI * KIBI // 1024 power 2 (2 power 20)
	GIBI       = MEBI * KIBI // 1024 power 3 (2 power 30)
	TEBI       = GIBI * KIBI // 1024 power 4 (2 power 40)
	PEBI       = TEBI * KIBI // 1024 power 5 (2 power 50)
	EXBI       = PEBI * KIBI // 1024 power 6 (2 power 60)
)

var binaryUnits = []struct {
	size int64
	name string
}{
	{EXBI, "EiB"},
	{PEBI, "PiB"},
	{TEBI, "TiB"},
	{GIBI, "GiB"},
	{MEBI, "MiB"},
	{KIBI, "KiB"},
}

// BinaryFormat formats a file size for the size column, e.g. "2.09 KiB".
// Negative sizes (unknown) format as an empty string.
func BinaryFormat(size int64) string {
	if size < 0 {
		return ""
	}
	for _, unit := range binaryUnits {
		if size >= unit.size {
			return fmt.Sprintf("%.2f %s", float64(size)/float64(unit.size), unit.name)
		}
	}
	return fmt.Sprintf("%d B", size)
}
