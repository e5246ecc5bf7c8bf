// Package decb implements the DECB ("Disk Extended Color BASIC") file
// system as stored in raw .DSK/.JVC TRS-80 Color Computer disk images:
// granule-chain allocation, the directory track, and the
// read/write/format/insert/delete/rename operations defined over them.
//
// Modeled on digler's internal/disk.Volume (Mount/Format/stat
// surface over a sector-addressed image) and on coco_dsk.py, the
// authoritative source for the granule-chain and directory-slot
// algorithms.
package decb

import (
	"fmt"
	"io"
	"strings"

	"github.com/chipshift/cocofs/internal/errs"
	"github.com/chipshift/cocofs/internal/fs"
	"github.com/chipshift/cocofs/internal/ioutil"
	"github.com/chipshift/cocofs/internal/logger"
	"github.com/chipshift/cocofs/sector"
)

// FileInfo is one directory listing row.
type FileInfo struct {
	Name            string
	Ext             string
	Type            FileType
	ASCII           bool
	FirstGranule    int
	SizeBytes       int
	LastSectorBytes int
}

// DisplayName renders "NAME.EXT", omitting the dot when Ext is empty.
func (fi FileInfo) DisplayName() string {
	if fi.Ext == "" {
		return fi.Name
	}
	return fi.Name + "." + fi.Ext
}

type options struct {
	log *logger.Logger
}

// Option configures Mount/MountFile/Format.
type Option func(*options)

// WithLogger attaches a logger that traces granule allocation, chain
// release, and directory slot reuse.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// Volume is a mounted, mutable DECB image.
type Volume struct {
	img *sector.Image
	fat fat
	dir *directory
	log *logger.Logger
}

func resolveOptions(opts []Option) options {
	var o options
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

// Mount parses buf as a DECB image: infers the JVC header, reads the FAT
// sector, and scans the directory track.
func Mount(buf []byte, opts ...Option) (*Volume, error) {
	o := resolveOptions(opts)
	log := o.log.With("decb")

	img := sector.Load(buf, log)

	fatData, err := img.ReadSector(dirTrack, fatSector)
	if err != nil {
		return nil, errs.Wrap("Mount", errs.InvalidImage, err)
	}
	var f fat
	copy(f[:], fatData[:NumGranules])

	dir, err := scanDirectory(img, log)
	if err != nil {
		return nil, err
	}

	if log != nil {
		log.Infof("mounted DECB volume: %d entries, %d free granules", len(dir.entries), f.freeCount())
	}

	return &Volume{img: img, fat: f, dir: dir, log: log}, nil
}

// MountFile reads path and mounts it.
func MountFile(path string, opts ...Option) (*Volume, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errs.Wrap("MountFile", errs.InvalidImage, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errs.Wrap("MountFile", errs.InvalidImage, err)
	}
	buf := make([]byte, info.Size())
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, errs.Wrap("MountFile", errs.InvalidImage, err)
	}

	return Mount(buf, opts...)
}

const sectorsPerTrackStd = 18

// Format builds a blank volume of the given geometry: tracks*sides*18
// sectors of 0xFF, an all-free FAT, and an empty directory track. The
// granule/FAT/directory-track addressing scheme always assumes the fixed
// 68-granule, 35-track single-sided layout regardless of tracks/sides — the FAT itself is always exactly 68 bytes,
// so the extra space on a 40- or 80-track image is formatted but left
// outside the addressable granule range (see DESIGN.md Open Questions).
func Format(tracks, sides int, addJVCHeader bool, opts ...Option) (*Volume, error) {
	o := resolveOptions(opts)
	log := o.log.With("decb")

	size := tracks * sides * sectorsPerTrackStd * sector.Size

	var img *sector.Image
	if addJVCHeader {
		img = sector.NewWithHeader(size, sectorsPerTrackStd, sides, log)
	} else {
		img = sector.New(size, log)
	}

	f := newFat()
	fatSectorData := make([]byte, sector.Size)
	for i := range fatSectorData {
		fatSectorData[i] = 0xFF
	}
	copy(fatSectorData[:NumGranules], f[:])
	if err := img.WriteSector(dirTrack, fatSector, fatSectorData); err != nil {
		return nil, errs.Wrap("Format", errs.InvalidImage, err)
	}

	empty := make([]byte, sector.Size)
	for i := range empty {
		empty[i] = 0xFF
	}
	for s := dirFirstSec; s <= dirLastSec; s++ {
		if err := img.WriteSector(dirTrack, s, empty); err != nil {
			return nil, errs.Wrap("Format", errs.InvalidImage, err)
		}
	}

	if log != nil {
		log.Infof("formatted DECB volume: tracks=%d sides=%d jvc=%v", tracks, sides, addJVCHeader)
	}

	return &Volume{img: img, fat: f, dir: &directory{log: log}, log: log}, nil
}

// FormatFile formats a new volume and writes it directly to path.
func FormatFile(path string, tracks, sides int, addJVCHeader bool) error {
	v, err := Format(tracks, sides, addJVCHeader)
	if err != nil {
		return err
	}
	return v.Flush(path)
}

// List returns every active directory entry.
func (v *Volume) List() []FileInfo {
	out := make([]FileInfo, 0, len(v.dir.entries))
	for _, e := range v.dir.entries {
		out = append(out, v.fileInfo(e))
	}
	return out
}

func (v *Volume) fileInfo(e entry) FileInfo {
	size := 0
	for _, link := range v.fat.chain(e.FirstGranule) {
		if link.IsLastInFile {
			size += (link.SectorsUsed-1)*sector.Size + e.LastSectorBytes
		} else {
			size += GranuleSize
		}
	}
	return FileInfo{
		Name:            strings.TrimRight(e.Name, " "),
		Ext:             strings.TrimRight(e.Ext, " "),
		Type:            e.Type,
		ASCII:           e.ASCII,
		FirstGranule:    e.FirstGranule,
		SizeBytes:       size,
		LastSectorBytes: e.LastSectorBytes,
	}
}

// Free returns (free granules, total granules).
func (v *Volume) Free() (free, total int) {
	return v.fat.freeCount(), NumGranules
}

// Extract follows name's granule chain and returns its exact byte content
// (trimmed per the last granule's last_sector_bytes).
func (v *Volume) Extract(name string) ([]byte, error) {
	e, ok := v.dir.lookup(name)
	if !ok {
		return nil, errs.New(fmt.Sprintf("Extract(%q)", name), errs.NotFound)
	}

	links := v.fat.chain(e.FirstGranule)
	out := []byte{}
	for _, link := range links {
		track, sec := granuleToTrackSector(link.Granule)
		n := GranuleSectors
		if link.IsLastInFile {
			n = link.SectorsUsed
		}
		for i := 0; i < n; i++ {
			data, err := v.img.ReadSector(track, sec+i)
			if err != nil {
				return nil, errs.Wrap("Extract", errs.InvalidImage, err)
			}
			out = append(out, data...)
		}
	}

	totalLen := len(out)
	if e.LastSectorBytes > 0 && totalLen > 0 {
		fullSectors := totalLen / sector.Size
		truncLen := (fullSectors-1)*sector.Size + e.LastSectorBytes
		if truncLen >= 0 && truncLen <= totalLen {
			out = out[:truncLen]
		}
	}

	if v.log != nil {
		v.log.Debugf("extracted %q: %d bytes over %d granules", name, len(out), len(links))
	}
	return out, nil
}

// Insert allocates granules for data, writes them, commits the FAT chain,
// and adds a directory entry.
func (v *Volume) Insert(name string, data []byte, fileType FileType, ascii bool) error {
	fname, ext, err := normalize83(name)
	if err != nil {
		return err
	}
	if _, exists := v.dir.lookup(name); exists {
		return errs.New(fmt.Sprintf("Insert(%q)", name), errs.BadName)
	}

	granulesNeeded := ceilDiv(len(data), GranuleSize)
	if v.fat.freeCount() < granulesNeeded {
		return errs.New(fmt.Sprintf("Insert(%q)", name), errs.OutOfSpace)
	}

	granules := v.fat.findFree(granulesNeeded)

	lastSectorBytes := 0
	tailSectors := 0
	if granulesNeeded > 0 {
		remainder := len(data) - (granulesNeeded-1)*GranuleSize
		tailSectors = ceilDiv(remainder, sector.Size)
		if tailSectors == 0 {
			tailSectors = GranuleSectors
			lastSectorBytes = sector.Size
		} else {
			lastSectorBytes = remainder - (tailSectors-1)*sector.Size
		}
	}

	off := 0
	for i, g := range granules {
		track, sec := granuleToTrackSector(g)
		n := GranuleSectors
		if i == len(granules)-1 {
			n = tailSectors
		}
		for s := 0; s < n; s++ {
			chunk := make([]byte, sector.Size)
			if off < len(data) {
				end := off + sector.Size
				if end > len(data) {
					end = len(data)
				}
				copy(chunk, data[off:end])
			} else {
				for i := range chunk {
					chunk[i] = 0xFF
				}
			}
			if err := v.img.WriteSector(track, sec+s, chunk); err != nil {
				return errs.Wrap("Insert", errs.InvalidImage, err)
			}
			off += sector.Size
		}
	}

	if err := v.fat.commitChain(granules, tailSectors); err != nil {
		return err
	}
	if err := v.writeFat(); err != nil {
		return err
	}

	firstGranule := 0
	if len(granules) > 0 {
		firstGranule = granules[0]
	}

	slotSec, slotOff, err := findFreeSlot(v.img)
	if err != nil {
		return err
	}
	e := entry{
		Name:            fname,
		Ext:             ext,
		Type:            fileType,
		ASCII:           ascii,
		FirstGranule:    firstGranule,
		LastSectorBytes: lastSectorBytes,
		slotSector:      slotSec,
		slotOffset:      slotOff,
	}
	if err := writeSlot(v.img, e); err != nil {
		return err
	}
	v.dir.entries = append(v.dir.entries, e)

	if v.log != nil {
		v.log.Infof("inserted %q: %d bytes, %d granules starting at %d", name, len(data), len(granules), firstGranule)
	}
	return nil
}

// Delete releases name's granule chain and tombstones its directory slot.
func (v *Volume) Delete(name string) error {
	e, ok := v.dir.lookup(name)
	if !ok {
		return errs.New(fmt.Sprintf("Delete(%q)", name), errs.NotFound)
	}

	v.fat.release(e.FirstGranule)
	if err := v.writeFat(); err != nil {
		return err
	}
	if err := tombstone(v.img, e); err != nil {
		return err
	}

	for i, cur := range v.dir.entries {
		if cur.slotSector == e.slotSector && cur.slotOffset == e.slotOffset {
			v.dir.entries = append(v.dir.entries[:i], v.dir.entries[i+1:]...)
			break
		}
	}

	if v.log != nil {
		v.log.Infof("deleted %q: released granule chain at %d", name, e.FirstGranule)
	}
	return nil
}

// Rename overwrites the filename/extension bytes of name's directory slot.
func (v *Volume) Rename(oldName, newName string) error {
	e, ok := v.dir.lookup(oldName)
	if !ok {
		return errs.New(fmt.Sprintf("Rename(%q)", oldName), errs.NotFound)
	}
	fname, ext, err := normalize83(newName)
	if err != nil {
		return err
	}
	if err := renameSlot(v.img, e, fname, ext); err != nil {
		return err
	}

	for i := range v.dir.entries {
		if v.dir.entries[i].slotSector == e.slotSector && v.dir.entries[i].slotOffset == e.slotOffset {
			v.dir.entries[i].Name = fname
			v.dir.entries[i].Ext = ext
			break
		}
	}
	return nil
}

// Bytes returns the full image buffer, header included.
func (v *Volume) Bytes() []byte {
	return v.img.Bytes()
}

// Flush writes the full image buffer to path, overwriting any existing
// file.
func (v *Volume) Flush(path string) error {
	return ioutil.WriteFile(path, v.img.Bytes())
}

func (v *Volume) writeFat() error {
	data, err := v.img.ReadSector(dirTrack, fatSector)
	if err != nil {
		return errs.Wrap("writeFat", errs.InvalidImage, err)
	}
	copy(data[:NumGranules], v.fat[:])
	return v.img.WriteSector(dirTrack, fatSector, data)
}

func ceilDiv(a, b int) int {
	if a == 0 {
		return 0
	}
	return (a + b - 1) / b
}

// normalize83 splits name into an 8-char uppercase filename and 3-char
// uppercase extension, space-padded, per DECB 8.3 naming rules.
func normalize83(name string) (fname, ext string, err error) {
	base := name
	extPart := ""
	if i := strings.LastIndex(name, "."); i >= 0 {
		base = name[:i]
		extPart = name[i+1:]
	}
	base = strings.ToUpper(strings.TrimSpace(base))
	extPart = strings.ToUpper(strings.TrimSpace(extPart))

	if len(base) == 0 || len(base) > 8 || len(extPart) > 3 {
		return "", "", errs.New(fmt.Sprintf("normalize83(%q)", name), errs.BadName)
	}
	for _, r := range base + extPart {
		if r < 0x20 || r > 0x7E {
			return "", "", errs.New(fmt.Sprintf("normalize83(%q)", name), errs.BadName)
		}
	}

	return fmt.Sprintf("%-8s", base), fmt.Sprintf("%-3s", extPart), nil
}
