package os9

const dirEntrySize = 32

// Attributes is the decoded OS-9 directory-entry attribute byte, mirroring
// OS9DirectoryEntry.__str__'s flag list.
type Attributes struct {
	Directory    bool
	Shared       bool
	PublicRead   bool
	PublicWrite  bool
	PublicExec   bool
	OwnerWrite   bool
	OwnerRead    bool
	raw          int
}

func decodeAttributes(b int) Attributes {
	return Attributes{
		Directory:   b&0x80 != 0,
		Shared:      b&0x40 != 0,
		PublicRead:  b&0x20 != 0,
		PublicWrite: b&0x10 != 0,
		PublicExec:  b&0x08 != 0,
		OwnerWrite:  b&0x02 != 0,
		OwnerRead:   b&0x01 != 0,
		raw:         b,
	}
}

func (a Attributes) String() string {
	parts := make([]string, 0, 7)
	if a.Directory {
		parts = append(parts, "DIR")
	}
	if a.Shared {
		parts = append(parts, "SHARE")
	}
	if a.PublicRead {
		parts = append(parts, "PR")
	}
	if a.PublicWrite {
		parts = append(parts, "PW")
	}
	if a.PublicExec {
		parts = append(parts, "PE")
	}
	if a.OwnerWrite {
		parts = append(parts, "W")
	}
	if a.OwnerRead {
		parts = append(parts, "R")
	}
	if len(parts) == 0 {
		return "NONE"
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += " " + p
	}
	return out
}

// DirEntry is one parsed root-directory entry.
type DirEntry struct {
	Name  string
	Attrs Attributes
	FDLsn int
}

// parseDirEntry decodes a 32-byte directory entry. Bytes 0..27 hold the
// filename; the first byte with bit 7 set terminates the name (its bit 7
// is cleared to recover the character). A leading 0x00 means the slot is
// empty. "." and ".." are skipped, matching
// original_source/coco_dsk_os9.py's _parse_directory_entry.
func parseDirEntry(data []byte) (DirEntry, bool) {
	if len(data) != dirEntrySize || data[0] == 0x00 {
		return DirEntry{}, false
	}

	nameBytes := make([]byte, 28)
	copy(nameBytes, data[0:28])

	nameEnd := -1
	for i := 0; i < 28; i++ {
		if nameBytes[i]&0x80 != 0 {
			nameBytes[i] &= 0x7F
			nameEnd = i + 1
			break
		}
	}
	if nameEnd == -1 {
		nameEnd = 28
	}

	name := trimNulls(nameBytes[:nameEnd])
	if name == "." || name == ".." {
		return DirEntry{}, false
	}

	return DirEntry{
		Name:  name,
		Attrs: decodeAttributes(int(data[28])),
		FDLsn: be24(data[29:32]),
	}, true
}

func trimNulls(b []byte) string {
	end := len(b)
	for end > 0 && b[end-1] == 0x00 {
		end--
	}
	return string(b[:end])
}
