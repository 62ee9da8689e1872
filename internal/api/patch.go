package api

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// patchBody — тело частичного обновления. Ключи сохраняют различие
// «поле отсутствует» / «поле равно null» / «поле со значением»:
// отсутствующие поля не трогаются, явный null на nullable-колонке
// пишет NULL.
type patchBody map[string]json.RawMessage

func decodePatch(r *http.Request) (patchBody, error) {
	var m map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}

func (p patchBody) has(key string) bool {
	_, ok := p[key]
	return ok
}

func (p patchBody) isNull(key string) bool {
	return bytes.Equal(bytes.TrimSpace(p[key]), []byte("null"))
}

func (p patchBody) unmarshal(key string, dst any) error {
	return json.Unmarshal(p[key], dst)
}
