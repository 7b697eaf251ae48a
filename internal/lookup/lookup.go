// Package lookup loads the base mapping of hashed phone identifiers to
// device model names and computes the matching digest for raw phone numbers.
package lookup

import (
	"bufio"
	"crypto/md5" //nolint:gosec // must match the digest the upstream mapping file is built with
	"encoding/hex"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// PhoneMD5 returns the lowercase 32-hex MD5 digest of a phone number string.
// The upstream mapping file is keyed by exactly this digest, so the
// algorithm is not substitutable.
func PhoneMD5(phone string) string {
	sum := md5.Sum([]byte(phone)) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

// Table maps a lowercase hash identifier to a device model name.
type Table map[string]string

// Load reads a tab-separated base mapping file. The first line is a header
// and is always discarded. Each remaining line contributes its first field
// (lowercased) as the identifier and its second as the model name; extra
// fields are ignored, lines with fewer than two fields are skipped, and the
// last occurrence of a duplicate identifier wins.
func Load(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "lookup: open base mapping")
	}
	defer f.Close() //nolint:errcheck

	table := make(Table)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	first := true
	for scanner.Scan() {
		if first {
			first = false
			continue
		}
		fields := strings.Split(strings.TrimRight(scanner.Text(), "\r\n"), "\t")
		if len(fields) < 2 {
			continue
		}
		table[strings.ToLower(fields[0])] = fields[1]
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrap(err, "lookup: read base mapping")
	}

	return table, nil
}

// Model returns the model name for a hash identifier.
func (t Table) Model(hash string) (string, bool) {
	name, ok := t[hash]
	return name, ok
}

// Len returns the number of mapping entries.
func (t Table) Len() int {
	return len(t)
}
