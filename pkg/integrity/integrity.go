// Package integrity computes the detached digests that sign text files.
//
// It is independent of the filesystem: callers hand it a core.FileRecord and
// store or compare the resulting hex digest however they like.
package integrity

import (
	"crypto/md5"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"hash"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/scribe/pkg/core"
)

// Algorithm selects the digest used for signatures.
type Algorithm string

const (
	MD5    Algorithm = "md5"
	SHA512 Algorithm = "sha512"
)

// Algorithms lists every supported algorithm.
func Algorithms() []Algorithm {
	return []Algorithm{MD5, SHA512}
}

// Off is the setting that disables signing.
const Off = "off"

// ParseAlgorithm validates an algorithm name (case-insensitive).
func ParseAlgorithm(s string) (Algorithm, error) {
	switch a := Algorithm(strings.ToLower(strings.TrimSpace(s))); a {
	case MD5, SHA512:
		return a, nil
	default:
		return "", fmt.Errorf("unsupported hash algorithm %q", s)
	}
}

// ParseSetting reads a signing setting. Accepted forms are "off", "md5",
// "sha512", "on,md5" and "on,sha512". The empty string means off.
// It reports whether signing is enabled and with which algorithm.
func ParseSetting(s string) (Algorithm, bool, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	switch {
	case len(parts) == 1 && (parts[0] == "" || parts[0] == Off):
		return "", false, nil
	case len(parts) == 1:
		a, err := ParseAlgorithm(parts[0])
		return a, err == nil, err
	case len(parts) == 2 && parts[0] == Off:
		return "", false, nil
	case len(parts) == 2 && parts[0] == "on":
		a, err := ParseAlgorithm(parts[1])
		return a, err == nil, err
	default:
		return "", false, fmt.Errorf("invalid signing setting %q", s)
	}
}

// New returns a fresh hash for the algorithm.
func (a Algorithm) New() hash.Hash {
	if a == SHA512 {
		return sha512.New()
	}
	return md5.New()
}

// Ext is the suffix of signature files for the algorithm.
func (a Algorithm) Ext() string {
	return "." + string(a)
}

// Canonical builds the deterministic input that is hashed for rec.
// Fields are name, content, created-at, size and owner id, each written as
// <length>:<value> and joined with ';'. ModifiedAt is not part of it.
func Canonical(rec core.FileRecord) []byte {
	owner := ""
	if rec.OwnerID != nil {
		owner = strconv.Itoa(*rec.OwnerID)
	}
	fields := []string{
		rec.Name,
		rec.Content,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		strconv.FormatInt(rec.Size, 10),
		owner,
	}

	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(strconv.Itoa(len(f)))
		b.WriteByte(':')
		b.WriteString(f)
	}
	return []byte(b.String())
}

// Sum returns the lowercase hex digest of rec's canonical input.
func Sum(a Algorithm, rec core.FileRecord) string {
	h := a.New()
	h.Write(Canonical(rec))
	return hex.EncodeToString(h.Sum(nil))
}

// Verify compares the stored digest with a freshly computed one.
// Surrounding whitespace in stored is ignored.
func Verify(a Algorithm, rec core.FileRecord, stored string) bool {
	want := Sum(a, rec)
	got := strings.ToLower(strings.TrimSpace(stored))
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}
