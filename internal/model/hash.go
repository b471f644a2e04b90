package model

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Hash returns a stable digest of the answer map, used as the result
// idempotency key. Keys are sorted and values rendered through their
// JSON form so the digest is independent of map iteration order.
func (m AnswerMap) Hash() string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		v, err := json.Marshal(m[QuestionID(k)])
		if err != nil {
			v = []byte(fmt.Sprintf("%v", m[QuestionID(k)]))
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.Write(v)
		b.WriteByte(';')
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
