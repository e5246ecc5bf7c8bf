package decb

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/go-restruct/restruct"

	"github.com/chipshift/cocofs/internal/errs"
	"github.com/chipshift/cocofs/internal/logger"
	"github.com/chipshift/cocofs/sector"
)

// FileType is the DECB directory entry's file_type byte.
type FileType uint8

const (
	FileTypeBASIC FileType = 0
	FileTypeData  FileType = 1
	FileTypeML    FileType = 2
	FileTypeText  FileType = 3
)

func (t FileType) String() string {
	switch t {
	case FileTypeBASIC:
		return "BASIC"
	case FileTypeData:
		return "DATA"
	case FileTypeML:
		return "ML"
	case FileTypeText:
		return "TEXT"
	default:
		return fmt.Sprintf("UNK(%02X)", uint8(t))
	}
}

const (
	asciiFlagBinary = 0x00
	asciiFlagASCII  = 0xFF
)

// rawEntry is the 32-byte on-disk directory entry layout, decoded with
// github.com/go-restruct/restruct the way go-exfat decodes its boot
// sector — a single restruct.Unpack call against a fixed-size struct,
// instead of manual per-field byte shifting.
type rawEntry struct {
	Filename        [8]byte
	Extension       [3]byte
	FileType        uint8
	ASCIIFlag       uint8
	FirstGranule    uint8
	LastSectorBytes uint16
	Reserved        [16]byte
}

// entry is the parsed, in-memory form of a directory slot, plus the
// bookkeeping needed to write it back (which sector and byte offset it
// lives at).
type entry struct {
	Name            string // 8 chars, space-padded, uppercase
	Ext             string // 3 chars, space-padded, uppercase
	Type            FileType
	ASCII           bool
	FirstGranule    int
	LastSectorBytes int

	slotSector int
	slotOffset int
}

// displayName mirrors original_source/coco_dsk.py's DirectoryEntry.__str__:
// "NAME.EXT" with both parts trimmed, and no dot when the extension is
// empty.
func (e entry) displayName() string {
	name := strings.TrimRight(e.Name, " ")
	ext := strings.TrimRight(e.Ext, " ")
	if ext == "" {
		return name
	}
	return name + "." + ext
}

func parseEntry(data []byte, sectorNum, offset int) (entry, bool) {
	if len(data) != entrySize {
		return entry{}, false
	}

	var raw rawEntry
	if err := restruct.Unpack(data, binary.BigEndian, &raw); err != nil {
		return entry{}, false
	}

	if raw.FirstGranule > NumGranules-1 {
		return entry{}, false
	}

	return entry{
		Name:            string(raw.Filename[:]),
		Ext:             string(raw.Extension[:]),
		Type:            FileType(raw.FileType),
		ASCII:           raw.ASCIIFlag == asciiFlagASCII,
		FirstGranule:    int(raw.FirstGranule),
		LastSectorBytes: int(raw.LastSectorBytes),
		slotSector:      sectorNum,
		slotOffset:      offset,
	}, true
}

func (e entry) encode() ([]byte, error) {
	raw := rawEntry{
		FileType:        uint8(e.Type),
		FirstGranule:    uint8(e.FirstGranule),
		LastSectorBytes: uint16(e.LastSectorBytes),
	}
	copy(raw.Filename[:], []byte(e.Name))
	copy(raw.Extension[:], []byte(e.Ext))
	if e.ASCII {
		raw.ASCIIFlag = asciiFlagASCII
	} else {
		raw.ASCIIFlag = asciiFlagBinary
	}
	for i := range raw.Reserved {
		raw.Reserved[i] = 0xFF
	}
	return restruct.Pack(binary.BigEndian, &raw)
}

// directory is the scanned contents of track 17, sectors 3..11.
type directory struct {
	entries []entry
	log     *logger.Logger
}

func scanDirectory(img *sector.Image, log *logger.Logger) (*directory, error) {
	d := &directory{log: log}
	for s := dirFirstSec; s <= dirLastSec; s++ {
		data, err := img.ReadSector(dirTrack, s)
		if err != nil {
			return nil, errs.Wrap("scanDirectory", errs.InvalidImage, err)
		}
		for i := 0; i < entriesPerSec; i++ {
			off := i * entrySize
			slice := data[off : off+entrySize]
			if slice[0] == 0x00 || slice[0] == 0xFF {
				continue
			}
			if e, ok := parseEntry(slice, s, off); ok {
				d.entries = append(d.entries, e)
			}
		}
	}
	return d, nil
}

// lookup matches case-insensitively on the canonical "NAME.EXT" form.
func (d *directory) lookup(name string) (entry, bool) {
	want := normalizeDisplay(name)
	for _, e := range d.entries {
		if strings.EqualFold(e.displayName(), want) {
			return e, true
		}
	}
	return entry{}, false
}

func normalizeDisplay(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// findFreeSlot returns the (sector, offset) of the first slot whose leading
// byte is 0x00 or 0xFF.
func findFreeSlot(img *sector.Image) (sectorNum, offset int, err error) {
	for s := dirFirstSec; s <= dirLastSec; s++ {
		data, readErr := img.ReadSector(dirTrack, s)
		if readErr != nil {
			return 0, 0, errs.Wrap("findFreeSlot", errs.InvalidImage, readErr)
		}
		for i := 0; i < entriesPerSec; i++ {
			off := i * entrySize
			if data[off] == 0x00 || data[off] == 0xFF {
				return s, off, nil
			}
		}
	}
	return 0, 0, errs.New("findFreeSlot", errs.DirectoryFull)
}

// writeSlot writes e's encoded 32 bytes into its recorded slot.
func writeSlot(img *sector.Image, e entry) error {
	data, err := img.ReadSector(dirTrack, e.slotSector)
	if err != nil {
		return errs.Wrap("writeSlot", errs.InvalidImage, err)
	}
	encoded, err := e.encode()
	if err != nil {
		return errs.Wrap("writeSlot", errs.InvalidImage, err)
	}
	copy(data[e.slotOffset:e.slotOffset+entrySize], encoded)
	return img.WriteSector(dirTrack, e.slotSector, data)
}

// tombstone writes 0xFF over just the first byte of the slot, matching
// coco_dsk.py's delete: it writes 0xFF at the entry's first byte only.
func tombstone(img *sector.Image, e entry) error {
	data, err := img.ReadSector(dirTrack, e.slotSector)
	if err != nil {
		return errs.Wrap("tombstone", errs.InvalidImage, err)
	}
	data[e.slotOffset] = 0xFF
	return img.WriteSector(dirTrack, e.slotSector, data)
}

// renameSlot overwrites bytes 0..10 (filename + extension) of e's slot.
func renameSlot(img *sector.Image, e entry, newName, newExt string) error {
	data, err := img.ReadSector(dirTrack, e.slotSector)
	if err != nil {
		return errs.Wrap("renameSlot", errs.InvalidImage, err)
	}
	copy(data[e.slotOffset:e.slotOffset+8], []byte(newName))
	copy(data[e.slotOffset+8:e.slotOffset+11], []byte(newExt))
	return img.WriteSector(dirTrack, e.slotSector, data)
}
