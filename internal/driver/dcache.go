package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"ssc/internal/diag"
	"ssc/internal/diagfmt"
	"ssc/internal/project"
	"ssc/internal/sema"
	"ssc/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит результаты проверки файлов на диске, ключ - CacheKey.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached outcome of checking one file. Spans are stored
// as byte offsets and rebound to the file on load.
type DiskPayload struct {
	Schema uint16

	Path        string
	ContentHash project.Digest
	Policy      string

	Diagnostics []CachedDiagnostic
	Definitions []CachedDefinition

	Broken bool // Whether the file has errors
}

// CachedDiagnostic is a diag.Diagnostic without its file id.
type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []CachedNote
}

// CachedNote is a diag.Note without its file id.
type CachedNote struct {
	Start uint32
	End   uint32
	Msg   string
}

// CachedDefinition is a diagfmt.Definition without its file id.
type CachedDefinition struct {
	Name  string
	Kind  string
	Type  string
	Start uint32
	End   uint32
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

// OpenDiskCacheAt opens (creating if needed) a disk cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// CacheKey identifies a check outcome: the same content checked under the
// same policy gives the same diagnostics.
func CacheKey(content project.Digest, policy sema.Policy) project.Digest {
	return project.Combine(content, policy.DuplicateDecls.String(), fmt.Sprintf("schema=%d", diskCacheSchemaVersion))
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := key.String()
	// подкаталог по первым двум символам, чтобы не раздувать один каталог
	return filepath.Join(c.dir, "checks", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) (err error) {
	if c == nil || payload == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache. A payload of
// another schema counts as a miss.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (ok bool, err error) {
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
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("decode cache entry: %w", err)
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

func newDiskPayload(path string, content project.Digest, policy sema.Policy, bag *diag.Bag, defs []diagfmt.Definition) *DiskPayload {
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Path:        path,
		ContentHash: content,
		Policy:      policy.DuplicateDecls.String(),
		Broken:      bag.HasErrors(),
	}
	for _, d := range bag.Items() {
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		payload.Diagnostics = append(payload.Diagnostics, cd)
	}
	for _, def := range defs {
		payload.Definitions = append(payload.Definitions, CachedDefinition{
			Name: def.Name, Kind: def.Kind, Type: def.Type,
			Start: def.Span.Start, End: def.Span.End,
		})
	}
	return payload
}

// restore rebinds the payload's spans to file and fills bag.
func (p *DiskPayload) restore(file source.FileID, bag *diag.Bag) []diagfmt.Definition {
	span := func(start, end uint32) source.Span {
		return source.Span{File: file, Start: start, End: end}
	}
	for _, cd := range p.Diagnostics {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code), span(cd.Start, cd.End), cd.Message)
		for _, n := range cd.Notes {
			d.WithNote(span(n.Start, n.End), n.Msg)
		}
		bag.Add(d)
	}
	defs := make([]diagfmt.Definition, 0, len(p.Definitions))
	for _, def := range p.Definitions {
		defs = append(defs, diagfmt.Definition{
			Name: def.Name, Kind: def.Kind, Type: def.Type,
			Span: span(def.Start, def.End),
		})
	}
	return defs
}
