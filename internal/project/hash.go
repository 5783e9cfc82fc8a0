package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// Combine строит ключ: H( content || len(salt1) || salt1 || ... ).
// Соли (политика, версия) различают результаты проверки одного и того же файла.
func Combine(content Digest, salts ...string) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, s := range salts {
		var n [4]byte
		l := len(s)
		n[0], n[1], n[2], n[3] = byte(l>>24), byte(l>>16), byte(l>>8), byte(l)
		_, _ = h.Write(n[:])
		_, _ = h.Write([]byte(s))
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
