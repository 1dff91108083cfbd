package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"chearmyp/internal/diag"
	"chearmyp/internal/node"
	"chearmyp/internal/project"
	"chearmyp/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит разобранные леса по ключу (хеш содержимого + опции).
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is one cached parse: the forest as records plus every
// diagnostic the lexer and parser produced for it.
type DiskPayload struct {
	Schema uint16        `msgpack:"v"`
	Path   string        `msgpack:"p"`
	Forest []node.Record `msgpack:"f"`
	Diags  []DiskDiag    `msgpack:"d"`
}

type DiskNote struct {
	Start uint32 `msgpack:"s"`
	End   uint32 `msgpack:"e"`
	Msg   string `msgpack:"m"`
}

// DiskDiag is a diagnostic without its file id; spans are rebound on load.
type DiskDiag struct {
	Severity uint8      `msgpack:"sev"`
	Code     uint16     `msgpack:"c"`
	Message  string     `msgpack:"m"`
	Start    uint32     `msgpack:"s"`
	End      uint32     `msgpack:"e"`
	Notes    []DiskNote `msgpack:"n,omitempty"`
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt uses dir as is.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог по первому байту, чтобы не складывать всё в одну папку
	return filepath.Join(c.dir, "forests", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	payload.Schema = diskCacheSchemaVersion
	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get reads a payload. A missing entry or one written with another schema
// is a miss, not an error.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// Clean drops every entry; the cache stays usable.
func (c *DiskCache) Clean() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем и удалим, чтобы параллельный Put не увидел полупустой каталог
	old := c.dir + ".old-" + time.Now().Format("20060102150405.000000000")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return os.MkdirAll(c.dir, 0o755)
		}
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

func diagsToDisk(items []*diag.Diagnostic) []DiskDiag {
	out := make([]DiskDiag, 0, len(items))
	for _, d := range items {
		dd := DiskDiag{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			dd.Notes = append(dd.Notes, DiskNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		out = append(out, dd)
	}
	return out
}

func diagsFromDisk(file source.FileID, dds []DiskDiag, bag *diag.Bag) {
	for _, dd := range dds {
		d := &diag.Diagnostic{
			Severity: diag.Severity(dd.Severity),
			Code:     diag.Code(dd.Code),
			Message:  dd.Message,
			Primary:  source.Span{File: file, Start: dd.Start, End: dd.End},
		}
		for _, n := range dd.Notes {
			d.Notes = append(d.Notes, diag.Note{
				Span: source.Span{File: file, Start: n.Start, End: n.End},
				Msg:  n.Msg,
			})
		}
		bag.Add(d)
	}
}
