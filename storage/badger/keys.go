// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"encoding/binary"

	"github.com/poiesic/hukumpedia/core"
)

const (
	embeddingPrefix      = "embrec:"
	embeddingModelPrefix = "embmod:"
)

// makeEmbeddingKey generates the primary key for a cached embedding.
// Format: prefix + 8 byte big-endian ID
func makeEmbeddingKey(id core.ID) []byte {
	buf := make([]byte, len(embeddingPrefix)+8)
	offset := copy(buf, embeddingPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeModelPrefix generates the prefix of every model index key for model.
// Format: prefix + model + NUL
func makeModelPrefix(model string) []byte {
	buf := make([]byte, 0, len(embeddingModelPrefix)+len(model)+1)
	buf = append(buf, embeddingModelPrefix...)
	buf = append(buf, model...)
	return append(buf, 0)
}

// makeModelKey generates a model index key.
// Format: prefix + model + NUL + 8 byte big-endian ID
func makeModelKey(model string, id core.ID) []byte {
	buf := makeModelPrefix(model)
	return binary.BigEndian.AppendUint64(buf, uint64(id))
}

// idFromModelKey extracts the embedding ID from a model index key.
func idFromModelKey(key []byte) (core.ID, bool) {
	if len(key) < 8 {
		return 0, false
	}
	return core.ID(binary.BigEndian.Uint64(key[len(key)-8:])), true
}
