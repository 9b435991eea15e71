// SPDX-License-Identifier: MPL-2.0

package zipper

import (
	"io/fs"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"
)

// Entry describes one record stored in an archive.
type Entry struct {
	// Name is the slash-separated path inside the archive. Directory markers
	// end with "/".
	Name string
	// IsDir is true for directory markers.
	IsDir bool
	// Size is the uncompressed payload size in bytes (zero for directories).
	Size int64
	// Mode holds the permission and type bits recorded for the entry.
	Mode fs.FileMode
	// Modified is the recorded modification time.
	Modified time.Time
}

func entryFromHeader(h *zip.FileHeader) Entry {
	mode := h.Mode()
	return Entry{
		Name:     h.Name,
		IsDir:    mode.IsDir() || strings.HasSuffix(h.Name, "/"),
		Size:     int64(h.UncompressedSize64), //nolint:gosec // sizes above 8 EiB are not representable on disk anyway
		Mode:     mode,
		Modified: h.Modified,
	}
}
