package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"salc/internal/diag"
	"salc/internal/project"
	"salc/internal/source"
	"salc/internal/version"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит результаты компиляции файлов на диске по хэшу содержимого.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached outcome of compiling one file: either MSIL lines
// or the diagnostics that stopped the compilation.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	// Path at the time of caching; informational only
	Path        string
	ContentHash project.Digest

	Lines       []string
	Diagnostics []DiskDiagnostic
}

// DiskDiagnostic is a diagnostic with spans reduced to byte offsets in the file.
type DiskDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []DiskNote
}

type DiskNote struct {
	Start uint32
	End   uint32
	Msg   string
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
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir, creating it if needed.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "il", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) error {
	if c == nil {
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
	tmp := f.Name()
	renamed := false
	defer func() {
		if !renamed {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	if err := os.Rename(tmp, p); err != nil {
		return err
	}
	renamed = true
	return nil
}

// Get reads a payload; entries of another schema count as a miss.
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
	defer func() { _ = f.Close() }()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// cacheKey = H(content || H(build fingerprint)); любые опции, влияющие на
// вывод или на набор диагностик, входят в отпечаток.
func cacheKey(file *source.File, opts CompileOptions) project.Digest {
	fingerprint := strings.Join([]string{
		version.Fingerprint(),
		strconv.Itoa(int(diskCacheSchemaVersion)),
		opts.MSIL.Assembly,
		opts.MSIL.ProgramClass,
		opts.MSIL.RuntimeClass,
		strconv.Itoa(opts.MaxDiagnostics),
	}, "\x00")
	return project.Combine(project.Digest(file.Hash), project.DigestOf([]byte(fingerprint)))
}

func payloadFromResult(res *CompileResult) *DiskPayload {
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Path:        res.File.Path,
		ContentHash: project.Digest(res.File.Hash),
		Lines:       res.Lines,
	}
	for _, d := range res.Bag.Items() {
		entry := DiskDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			entry.Notes = append(entry.Notes, DiskNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		payload.Diagnostics = append(payload.Diagnostics, entry)
	}
	return payload
}

// restore rebuilds the result against a freshly loaded file.
func (p *DiskPayload) restore(fs *source.FileSet, file *source.File, maxDiagnostics int) *CompileResult {
	bag := diag.NewBag(maxDiagnostics)
	for _, d := range p.Diagnostics {
		entry := diag.New(diag.Severity(d.Severity), diag.Code(d.Code), source.Span{File: file.ID, Start: d.Start, End: d.End}, d.Message)
		for _, n := range d.Notes {
			entry = entry.WithNote(source.Span{File: file.ID, Start: n.Start, End: n.End}, n.Msg)
		}
		bag.Add(entry)
	}
	return &CompileResult{
		FileSet: fs,
		File:    file,
		Bag:     bag,
		Lines:   p.Lines,
		Cached:  true,
	}
}
