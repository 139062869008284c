// SPDX-License-Identifier: Apache-2.0

// Package pseudonym replaces the field names of equipment detail records with
// short deterministic digests.
package pseudonym

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/jestin-george-sclera/asset-classification-patterns/internal/catalog"
)

// DigestLength is the number of hex characters kept from the SHA-256 of a
// field name. Short keys make collisions possible; they are accepted.
const DigestLength = 8

// Digest returns the pseudonymized form of a field name.
func Digest(name string) string {
	sum := sha256.Sum256([]byte(name))
	return hex.EncodeToString(sum[:])[:DigestLength]
}

// Pseudonymize returns a copy of v in which every record field name, at every
// depth, is replaced by its Digest. Each digest is recorded in reg before the
// field's own value is walked, and siblings are processed in order. Records
// nested inside lists are left as they are, as are all scalars.
func Pseudonymize(v catalog.Value, reg *Registry) catalog.Value {
	if v.Kind != catalog.KindRecord {
		return v
	}
	fields := make([]catalog.Field, len(v.Fields))
	for i, f := range v.Fields {
		d := Digest(f.Name)
		reg.Record(d, f.Name)
		fields[i] = catalog.Field{Name: d, Value: Pseudonymize(f.Value, reg)}
	}
	return catalog.Record(fields...)
}
