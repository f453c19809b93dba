package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"quill/internal/source"
	"quill/internal/token"
)

// Current schema version - increment when the token layout changes.
const tokenCacheSchemaVersion uint16 = 1

// Digest is a SHA-256 cache key.
type Digest [sha256.Size]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// TokenCache хранит потоки токенов на диске по хешу содержимого файла.
// Thread-safe for concurrent access.
type TokenCache struct {
	mu  sync.RWMutex
	dir string
}

// tokenPayload is the on-disk record of one lexed file.
type tokenPayload struct {
	Schema uint16
	Tokens []token.Token
}

// OpenTokenCache opens the cache at $XDG_CACHE_HOME/<app> (or ~/.cache/<app>).
func OpenTokenCache(app string) (*TokenCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewTokenCache(filepath.Join(base, app))
}

// NewTokenCache opens a cache rooted at dir, creating it if needed.
func NewTokenCache(dir string) (*TokenCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("token cache: %w", err)
	}
	return &TokenCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *TokenCache) Dir() string { return c.dir }

// Key derives the cache key from file content and the schema version.
func (c *TokenCache) Key(content []byte) Digest {
	h := sha256.New()
	var schema [2]byte
	binary.BigEndian.PutUint16(schema[:], tokenCacheSchemaVersion)
	h.Write(schema[:])
	h.Write(content)
	var d Digest
	h.Sum(d[:0])
	return d
}

func (c *TokenCache) pathFor(key Digest) string {
	// подкаталог "tokens" — чтобы DropAll не трогал чужие файлы
	return filepath.Join(c.dir, "tokens", key.String()+".mp")
}

// Put serializes tokens under key. The file appears atomically.
func (c *TokenCache) Put(key Digest, tokens []token.Token) (err error) {
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
	defer func() {
		if err != nil {
			_ = f.Close()           //nolint:errcheck
			_ = os.Remove(f.Name()) //nolint:errcheck
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(&tokenPayload{Schema: tokenCacheSchemaVersion, Tokens: tokens}); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get loads the tokens stored under key and rebinds their spans to file.
// A missing entry or one written by another schema is a miss.
func (c *TokenCache) Get(key Digest, file source.FileID) ([]token.Token, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload tokenPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("token cache %s: %w", key, err)
	}
	if payload.Schema != tokenCacheSchemaVersion {
		return nil, false, nil
	}

	for i := range payload.Tokens {
		tok := &payload.Tokens[i]
		tok.Span.File = file
		for j := range tok.Leading {
			tok.Leading[j].Span.File = file
		}
	}
	return payload.Tokens, true, nil
}

// DropAll invalidates the cache.
func (c *TokenCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "tokens"))
}
